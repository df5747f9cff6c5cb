package lib

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepError(t *testing.T) {
	err := error(NewStepError(RunStateCreated, ErrLaunch, fs.ErrNotExist))

	assert.EqualError(t, err, "unable to start the process: file does not exist")
	assert.ErrorIs(t, err, ErrLaunch)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrAttach)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, RunStateCreated, stepErr.Step)
}

func TestStepErrorWithoutCause(t *testing.T) {
	err := NewStepError(RunStateTerminated, ErrWait, nil)
	assert.EqualError(t, err, "failed waiting for process termination")
	assert.True(t, errors.Is(err, ErrWait))
}

func TestDescendantsAliveError(t *testing.T) {
	var err error = &DescendantsAliveError{Count: 3}
	assert.EqualError(t, err, "there are still 3 alive children processes")

	var alive *DescendantsAliveError
	require.ErrorAs(t, err, &alive)
	assert.EqualValues(t, 3, alive.Count)
}
