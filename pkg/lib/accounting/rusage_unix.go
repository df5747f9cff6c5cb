//go:build unix

package accounting

import (
	"fmt"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"

	"github.com/grigory-rechistov/chronos/pkg/lib"
)

// Rusage accounts a process tree through getrusage(RUSAGE_CHILDREN) of the
// current process. Membership is implicit: every descendant that has been
// waited for is included. A baseline taken at creation hides children
// waited for earlier.
//
// On Linux orphaned descendants are reparented to this process and reaped
// by Query once they exit, so their usage is included. Descendants still
// running at Query time are counted as active instead.
type Rusage struct {
	baseline unix.Rusage
	primary  *exec.Cmd
	released bool
}

func NewRusage() (*Rusage, error) {
	if err := becomeSubreaper(); err != nil {
		logger.Debug("could not become child subreaper", "err", err)
	}
	// leftovers of earlier runs must not leak into this one
	if err := reapOrphans(0); err != nil {
		logger.Debug("could not reap exited orphans", "err", err)
	}

	r := &Rusage{}
	if err := unix.Getrusage(unix.RUSAGE_CHILDREN, &r.baseline); err != nil {
		return nil, fmt.Errorf("getrusage: %w", err)
	}
	return r, nil
}

// Attach only validates the target: descendants of this process are
// members by construction.
func (r *Rusage) Attach(t Target) error {
	if r.released {
		return ErrReleased
	}
	if err := t.validate(); err != nil {
		return err
	}
	r.primary = t.Cmd
	return nil
}

func (r *Rusage) Query() (Counters, error) {
	if r.released {
		return Counters{}, ErrReleased
	}

	if err := reapOrphans(r.unwaitedPrimary()); err != nil {
		return Counters{}, fmt.Errorf("reap exited orphans: %w", err)
	}

	var now unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_CHILDREN, &now); err != nil {
		return Counters{}, fmt.Errorf("getrusage: %w", err)
	}

	active, err := countDescendants()
	if err != nil {
		return Counters{}, err
	}

	return Counters{
		User:            timevalTicks(&now.Utime) - timevalTicks(&r.baseline.Utime),
		Kernel:          timevalTicks(&now.Stime) - timevalTicks(&r.baseline.Stime),
		PageFaults:      faults(&now) - faults(&r.baseline),
		ActiveProcesses: active,
	}, nil
}

// unwaitedPrimary is the pid of the primary process while its owner has not
// waited for it yet. Reaping it here would steal its exit status.
func (r *Rusage) unwaitedPrimary() int {
	if r.primary == nil || r.primary.Process == nil || r.primary.ProcessState != nil {
		return 0
	}
	return r.primary.Process.Pid
}

func (r *Rusage) Terminate() error {
	if r.released {
		return ErrReleased
	}
	return killDescendants()
}

func (r *Rusage) Release() error {
	r.released = true
	return nil
}

func timevalTicks(tv *unix.Timeval) lib.Ticks {
	return lib.TicksFromDuration(time.Duration(tv.Nano()))
}

func faults(ru *unix.Rusage) uint64 {
	return uint64(ru.Minflt) + uint64(ru.Majflt)
}
