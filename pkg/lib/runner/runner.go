// Package runner launches a command under an accounting container and
// measures it. The lifecycle of one run is expressed by the stage types
// Suspended, Attached, Running and Terminated: each stage only offers the
// next transition, so a process cannot be resumed before it is attached.
package runner

import (
	"log/slog"

	"github.com/grigory-rechistov/chronos/pkg/lib/accounting"
)

var logger = slog.New(slog.DiscardHandler)

// SetLogger replaces the package logger, which discards everything by default.
func SetLogger(l *slog.Logger) {
	logger = l
}

// ContainerFactory creates the accounting container for one run.
type ContainerFactory func() (accounting.Container, error)

// Runner times commands.
type Runner struct {
	newContainer         ContainerFactory
	terminateDescendants bool
}

type Option func(*Runner)

// WithContainerFactory overrides how accounting containers are created.
func WithContainerFactory(f ContainerFactory) Option {
	return func(r *Runner) {
		r.newContainer = f
	}
}

// WithAccounting creates containers with accounting.New(opts).
func WithAccounting(opts accounting.Options) Option {
	return WithContainerFactory(func() (accounting.Container, error) {
		return accounting.New(opts)
	})
}

// WithTerminateDescendants makes the runner kill members of the tree that
// are still alive once the primary process has exited and metrics have been
// read. By default they are left running.
func WithTerminateDescendants(terminate bool) Option {
	return func(r *Runner) {
		r.terminateDescendants = terminate
	}
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	WithAccounting(accounting.Options{Backend: accounting.BackendAuto})(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}
