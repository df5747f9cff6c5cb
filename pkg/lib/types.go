package lib

import (
	"strings"
	"time"
)

// RunState mirrors the lifecycle of one timed run.
// Transitions only move forward; any failure ends in RunStateFailed.
type RunState int

const (
	RunStateUnspecified RunState = iota
	RunStateCreated
	RunStateAttached
	RunStateRunning
	RunStateTerminated
	RunStateMetricsReady
	RunStateReleased
	RunStateFailed
)

func (s RunState) String() string {
	switch s {
	case RunStateCreated:
		return "created"
	case RunStateAttached:
		return "attached"
	case RunStateRunning:
		return "running"
	case RunStateTerminated:
		return "terminated"
	case RunStateMetricsReady:
		return "metrics-ready"
	case RunStateReleased:
		return "released"
	case RunStateFailed:
		return "failed"
	default:
		return "unspecified"
	}
}

// Command captures the program and arguments of a timed run.
type Command struct {
	Command string
	Args    []string
}

// Argv returns the full argument vector, program first.
func (c Command) Argv() []string {
	return append([]string{c.Command}, c.Args...)
}

// String joins the argument vector with single spaces, the way it is shown
// in the verbose report.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// ProcessTimes holds the creation and exit timestamps of the primary process.
type ProcessTimes struct {
	Created time.Time
	Exited  time.Time
}

// ProcessMetrics is the result of a timed run.
// Wall is measured on the primary process only; User, Kernel and PageFaults
// cover the whole process tree.
type ProcessMetrics struct {
	Wall              Ticks
	User              Ticks
	Kernel            Ticks
	PageFaults        uint64
	ExitCode          int
	ActiveDescendants uint32
}
