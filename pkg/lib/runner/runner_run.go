package runner

import (
	"github.com/grigory-rechistov/chronos/pkg/lib"
)

// Result of a completed run.
type Result struct {
	Command lib.Command
	Metrics lib.ProcessMetrics
	// Warning is set when part of the process tree outlived the primary
	// process. The metrics are valid regardless.
	Warning error
}

// Run launches command, attaches it to a fresh accounting container, lets it
// run until the primary process exits and returns its metrics. It blocks
// without timeout. Errors are *lib.StepError values.
func (runner *Runner) Run(command lib.Command) (*Result, error) {
	suspended, err := runner.Launch(command)
	if err != nil {
		return nil, err
	}

	container, err := runner.newContainer()
	if err != nil {
		if abandonErr := suspended.Abandon(); abandonErr != nil {
			logger.Warn("failed to abandon process", "err", abandonErr)
		}
		return nil, lib.NewStepError(lib.RunStateAttached, lib.ErrAttach, err)
	}

	attached, err := suspended.Attach(container)
	if err != nil {
		return nil, err
	}

	running, err := attached.Resume()
	if err != nil {
		return nil, err
	}

	terminated, err := running.Wait()
	if err != nil {
		return nil, err
	}

	result, err := terminated.Collect()
	if err != nil {
		return nil, err
	}

	if err := terminated.Release(); err != nil {
		logger.Warn("failed to release run resources", "err", err)
	}
	return result, nil
}
