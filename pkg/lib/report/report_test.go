package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grigory-rechistov/chronos/pkg/lib"
)

var sample = lib.ProcessMetrics{
	Wall:       12_345_678,
	User:       10_000_000,
	Kernel:     456_000,
	PageFaults: 9120,
	ExitCode:   3,
}

func TestWriteCompact(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib.Command{Command: "make"}, sample, Options{Precision: DefaultPrecision}))
	assert.Equal(t, "real\t1.23s\nuser\t1.00s\nsys\t0.05s\n", buf.String())
}

func TestWriteVerbose(t *testing.T) {
	var buf bytes.Buffer
	command := lib.Command{Command: "cc", Args: []string{"-c", "a.c"}}
	require.NoError(t, Write(&buf, command, sample, Options{Verbose: true, Precision: DefaultPrecision}))

	want := `Command being timed: "cc -c a.c"
Elapsed (wall clock) time (seconds): 1.23
User time (seconds): 1.00
System time (seconds): 0.05
Page faults: 9120
Exit status: 3
`
	assert.Equal(t, want, buf.String())
}

func TestWritePrecision(t *testing.T) {
	tests := []struct {
		precision int
		want      string
	}{
		{precision: 0, want: "real\t1s\nuser\t1s\nsys\t0s\n"},
		{precision: 4, want: "real\t1.2346s\nuser\t1.0000s\nsys\t0.0456s\n"},
		{precision: -1, want: "real\t1.23s\nuser\t1.00s\nsys\t0.05s\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, lib.Command{Command: "x"}, sample, Options{Precision: tt.precision}))
		assert.Equal(t, tt.want, buf.String(), "precision %d", tt.precision)
	}
}

func TestWriteZero(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib.Command{Command: "true"}, lib.ProcessMetrics{}, Options{Precision: 2}))
	assert.Equal(t, "real\t0.00s\nuser\t0.00s\nsys\t0.00s\n", buf.String())
}
