package runner

import (
	"errors"
	"fmt"

	"github.com/grigory-rechistov/chronos/pkg/lib"
	"github.com/grigory-rechistov/chronos/pkg/lib/accounting"
)

// run is the state shared by all stages of one timed run.
type run struct {
	runner    *Runner
	command   lib.Command
	proc      process
	container accounting.Container
	state     lib.RunState

	exitCode int
	times    lib.ProcessTimes
}

func (r *run) expect(state lib.RunState) error {
	if r.state != state {
		return fmt.Errorf("%w: run is %s, expected %s", lib.ErrInvalidTransition, r.state, state)
	}
	return nil
}

// fail moves the run to the failed state, releases everything it owns and
// returns the error describing the failed step.
func (r *run) fail(step lib.RunState, kind, err error) error {
	logger.Debug("run failed", "command", r.command.String(), "step", step.String(), "err", err)
	if cleanupErr := r.release(); cleanupErr != nil {
		logger.Warn("cleanup after failure", "command", r.command.String(), "err", cleanupErr)
	}
	r.state = lib.RunStateFailed
	return lib.NewStepError(step, kind, err)
}

// release frees the process handle and the container. A process that was
// never resumed is killed first so it does not linger suspended.
func (r *run) release() error {
	var errs []error
	if r.state < lib.RunStateRunning {
		if err := r.proc.kill(); err != nil {
			errs = append(errs, fmt.Errorf("kill suspended process: %w", err))
		}
	}
	if err := r.proc.close(); err != nil {
		errs = append(errs, fmt.Errorf("close process: %w", err))
	}
	if r.container != nil {
		if err := r.container.Release(); err != nil {
			errs = append(errs, fmt.Errorf("release container: %w", err))
		}
		r.container = nil
	}
	r.state = lib.RunStateReleased
	return errors.Join(errs...)
}

// Suspended is a created process that has not executed anything yet.
type Suspended struct {
	run *run
}

// Attach places the process into c. From here on the run owns c and
// releases it on every path.
func (s *Suspended) Attach(c accounting.Container) (*Attached, error) {
	if err := s.run.expect(lib.RunStateCreated); err != nil {
		return nil, err
	}

	s.run.container = c
	if err := c.Attach(s.run.proc.target()); err != nil {
		return nil, s.run.fail(lib.RunStateAttached, lib.ErrAttach, err)
	}

	s.run.state = lib.RunStateAttached
	return &Attached{run: s.run}, nil
}

// Abandon releases a process that will never run.
func (s *Suspended) Abandon() error {
	if err := s.run.expect(lib.RunStateCreated); err != nil {
		return err
	}
	return s.run.release()
}

// Attached is a suspended process that is already a member of its
// accounting container.
type Attached struct {
	run *run
}

// Resume lets the process run.
func (a *Attached) Resume() (*Running, error) {
	if err := a.run.expect(lib.RunStateAttached); err != nil {
		return nil, err
	}

	if err := a.run.proc.resume(); err != nil {
		if errors.Is(err, errAttachAtStart) {
			return nil, a.run.fail(lib.RunStateAttached, lib.ErrAttach, err)
		}
		return nil, a.run.fail(lib.RunStateRunning, lib.ErrLaunch, err)
	}

	a.run.state = lib.RunStateRunning
	logger.Debug("process resumed", "command", a.run.command.String(), "pid", a.run.proc.pid())
	return &Running{run: a.run}, nil
}

// Running is a process that executes under accounting.
type Running struct {
	run *run
}

// Pid returns the process id of the primary process.
func (rn *Running) Pid() int {
	return rn.run.proc.pid()
}

// Wait blocks until the primary process exits. There is no timeout.
// Descendants are not waited for.
func (rn *Running) Wait() (*Terminated, error) {
	if err := rn.run.expect(lib.RunStateRunning); err != nil {
		return nil, err
	}

	exitCode, times, err := rn.run.proc.wait()
	if err != nil {
		return nil, rn.run.fail(lib.RunStateTerminated, lib.ErrWait, err)
	}

	rn.run.exitCode = exitCode
	rn.run.times = times
	rn.run.state = lib.RunStateTerminated
	logger.Debug("process exited", "command", rn.run.command.String(), "exit_code", exitCode)
	return &Terminated{run: rn.run}, nil
}

// Terminated is a primary process that has exited. Its metrics can be
// collected.
type Terminated struct {
	run *run
}

func (t *Terminated) ExitCode() int {
	return t.run.exitCode
}

// Collect reads the container aggregates and builds the metrics of the run.
// Live descendants produce a *lib.DescendantsAliveError in Result.Warning.
func (t *Terminated) Collect() (*Result, error) {
	if err := t.run.expect(lib.RunStateTerminated); err != nil {
		return nil, err
	}

	counters, err := t.run.container.Query()
	if err != nil {
		return nil, t.run.fail(lib.RunStateMetricsReady, lib.ErrMetricsQuery, err)
	}

	result := &Result{
		Command: t.run.command,
		Metrics: Extract(t.run.times, counters, t.run.exitCode),
	}
	t.run.state = lib.RunStateMetricsReady

	if counters.ActiveProcesses != 0 {
		result.Warning = &lib.DescendantsAliveError{Count: counters.ActiveProcesses}
		logger.Info(result.Warning.Error(), "command", t.run.command.String())

		if t.run.runner.terminateDescendants {
			logger.Info("terminating remaining processes", "count", counters.ActiveProcesses)
			if err := t.run.container.Terminate(); err != nil {
				logger.Warn("failed to terminate remaining processes", "err", err)
			}
		}
	}

	return result, nil
}

// Release frees the process handle and the container. Members still alive
// keep running.
func (t *Terminated) Release() error {
	if t.run.state == lib.RunStateReleased || t.run.state == lib.RunStateFailed {
		return nil
	}
	return t.run.release()
}
