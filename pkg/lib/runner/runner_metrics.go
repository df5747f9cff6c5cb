package runner

import (
	"github.com/grigory-rechistov/chronos/pkg/lib"
	"github.com/grigory-rechistov/chronos/pkg/lib/accounting"
)

// Extract builds the metrics of a run. Wall-clock time spans the primary
// process only; CPU time and page faults are the container aggregates.
func Extract(times lib.ProcessTimes, counters accounting.Counters, exitCode int) lib.ProcessMetrics {
	return lib.ProcessMetrics{
		Wall:              nonNegative(lib.TicksFromDuration(times.Exited.Sub(times.Created))),
		User:              nonNegative(counters.User),
		Kernel:            nonNegative(counters.Kernel),
		PageFaults:        counters.PageFaults,
		ExitCode:          exitCode,
		ActiveDescendants: counters.ActiveProcesses,
	}
}

func nonNegative(t lib.Ticks) lib.Ticks {
	if t < 0 {
		return 0
	}
	return t
}
