package lib

import (
	"errors"
	"fmt"
)

// Fatal failure kinds of a timed run. Use errors.Is to classify the error
// returned by the runner.
var (
	ErrLaunch       = errors.New("unable to start the process")
	ErrAttach       = errors.New("unable to attach the process to the accounting container")
	ErrWait         = errors.New("failed waiting for process termination")
	ErrMetricsQuery = errors.New("unable to query accounting information")

	ErrInvalidTransition = errors.New("invalid run state transition")
)

// StepError reports which step of a run failed. It unwraps to both the
// failure kind and the underlying OS error.
type StepError struct {
	Step RunState
	Kind error
	Err  error
}

func NewStepError(step RunState, kind, err error) *StepError {
	return &StepError{Step: step, Kind: kind, Err: err}
}

func (e *StepError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *StepError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// DescendantsAliveError is a warning, not a failure: the primary process
// exited while Count members of its tree were still running. Metrics are
// still valid.
type DescendantsAliveError struct {
	Count uint32
}

func (e *DescendantsAliveError) Error() string {
	return fmt.Sprintf("there are still %d alive children processes", e.Count)
}
