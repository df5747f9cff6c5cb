// Package report renders the metrics of a timed run.
package report

import (
	"fmt"
	"io"

	"github.com/grigory-rechistov/chronos/pkg/lib"
)

const DefaultPrecision = 2

type Options struct {
	Verbose bool
	// Precision is the number of decimals for seconds. Negative means
	// DefaultPrecision.
	Precision int
}

// Write renders m for command in the compact or the verbose layout.
func Write(w io.Writer, command lib.Command, m lib.ProcessMetrics, opts Options) error {
	if opts.Precision < 0 {
		opts.Precision = DefaultPrecision
	}
	if opts.Verbose {
		return writeVerbose(w, command, m, opts.Precision)
	}
	return writeCompact(w, m, opts.Precision)
}

func seconds(t lib.Ticks, precision int) string {
	return fmt.Sprintf("%.*f", precision, t.Seconds())
}

func writeCompact(w io.Writer, m lib.ProcessMetrics, precision int) error {
	_, err := fmt.Fprintf(w, "real\t%ss\nuser\t%ss\nsys\t%ss\n",
		seconds(m.Wall, precision),
		seconds(m.User, precision),
		seconds(m.Kernel, precision),
	)
	return err
}

func writeVerbose(w io.Writer, command lib.Command, m lib.ProcessMetrics, precision int) error {
	_, err := fmt.Fprintf(w,
		"Command being timed: \"%s\"\n"+
			"Elapsed (wall clock) time (seconds): %s\n"+
			"User time (seconds): %s\n"+
			"System time (seconds): %s\n"+
			"Page faults: %d\n"+
			"Exit status: %d\n",
		command.String(),
		seconds(m.Wall, precision),
		seconds(m.User, precision),
		seconds(m.Kernel, precision),
		m.PageFaults,
		m.ExitCode,
	)
	return err
}
