package runner

import (
	"errors"

	"github.com/grigory-rechistov/chronos/pkg/lib"
	"github.com/grigory-rechistov/chronos/pkg/lib/accounting"
)

// process is the platform handle of the primary process.
type process interface {
	target() accounting.Target
	pid() int
	resume() error
	wait() (int, lib.ProcessTimes, error)
	kill() error
	close() error
}

// errAttachAtStart marks a resume failure caused by the accounting
// container: some backends only join the process to the container when the
// kernel creates it.
var errAttachAtStart = errors.New("joining the accounting container at process creation failed")
