package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grigory-rechistov/chronos/pkg/lib"
)

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chronos.prom")

	m := sample
	m.ActiveDescendants = 2
	require.NoError(t, WriteTextfile(path, lib.Command{Command: "/usr/bin/make", Args: []string{"all"}}, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	for _, line := range []string{
		"# TYPE chronos_wall_seconds gauge",
		`chronos_wall_seconds{command="make"} 1.2345678`,
		`chronos_user_seconds{command="make"} 1`,
		`chronos_system_seconds{command="make"} 0.0456`,
		`chronos_page_faults{command="make"} 9120`,
		`chronos_exit_code{command="make"} 3`,
		`chronos_active_descendants{command="make"} 2`,
	} {
		assert.Contains(t, text, line+"\n")
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteTextfileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "chronos.prom")
	require.Error(t, WriteTextfile(path, lib.Command{Command: "true"}, lib.ProcessMetrics{}))
}
