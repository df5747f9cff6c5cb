// Package accounting groups a process tree under a single OS-level container
// and reads aggregate CPU time, page faults and live member count for it.
package accounting

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/grigory-rechistov/chronos/pkg/lib"
)

//go:generate mockgen -destination=mocks/mock_container.go -package=mocks github.com/grigory-rechistov/chronos/pkg/lib/accounting Container

var logger = slog.New(slog.DiscardHandler)

// SetLogger replaces the package logger, which discards everything by default.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Counters are tree-wide aggregates. User, Kernel and PageFaults include
// members that already exited; ActiveProcesses counts only live ones.
type Counters struct {
	User            lib.Ticks
	Kernel          lib.Ticks
	PageFaults      uint64
	ActiveProcesses uint32
}

// Container is an accounting group. A process attached before it starts
// running is accounted together with every process it spawns.
type Container interface {
	// Attach adds a not yet running process to the group.
	Attach(t Target) error
	// Query returns the current aggregates. Repeated calls return the same
	// values unless members ran in between.
	Query() (Counters, error)
	// Terminate kills every live member.
	Terminate() error
	// Release frees the container. Members keep running.
	Release() error
}

type Backend string

const (
	BackendAuto   Backend = "auto"
	BackendJob    Backend = "job"
	BackendCgroup Backend = "cgroup"
	BackendRusage Backend = "rusage"
)

var (
	ErrUnsupportedBackend = errors.New("accounting backend is not supported on this platform")
	ErrReleased           = errors.New("accounting container already released")
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendAuto, nil
	case BackendAuto, BackendJob, BackendCgroup, BackendRusage:
		return b, nil
	default:
		return "", fmt.Errorf("unknown accounting backend %q", s)
	}
}

// Options select and configure the backend created by New.
type Options struct {
	Backend Backend
	// CgroupRoot is the cgroup v2 directory under which per-run groups are
	// created. Empty means a default derived from the current process.
	CgroupRoot string
}

// New creates an empty container for the current platform.
func New(opts Options) (Container, error) {
	if opts.Backend == "" {
		opts.Backend = BackendAuto
	}
	return newContainer(opts)
}
