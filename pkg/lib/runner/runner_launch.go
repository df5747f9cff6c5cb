package runner

import (
	"errors"

	"github.com/grigory-rechistov/chronos/pkg/lib"
)

// Launch creates the process for command without letting it run.
func (runner *Runner) Launch(command lib.Command) (*Suspended, error) {
	if command.Command == "" {
		return nil, lib.NewStepError(lib.RunStateCreated, lib.ErrLaunch, errors.New("command is required"))
	}

	logger.Debug("launching process", "command", command.String())
	proc, err := newProcess(command)
	if err != nil {
		logger.Debug("failed to launch process", "command", command.String(), "err", err)
		return nil, lib.NewStepError(lib.RunStateCreated, lib.ErrLaunch, err)
	}

	r := &run{
		runner:  runner,
		command: command,
		proc:    proc,
		state:   lib.RunStateCreated,
	}
	return &Suspended{run: r}, nil
}
