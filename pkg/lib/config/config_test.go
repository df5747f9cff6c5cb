package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grigory-rechistov/chronos/pkg/lib/accounting"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
accounting = "rusage"
cgroup_root = "/sys/fs/cgroup/bench"
terminate_descendants = true
precision = 3
`)

	cfg, err := load(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, Config{
		LogLevel:             "debug",
		Accounting:           "rusage",
		CgroupRoot:           "/sys/fs/cgroup/bench",
		TerminateDescendants: true,
		Precision:            3,
	}, cfg)

	assert.Equal(t, accounting.Options{
		Backend:    accounting.BackendRusage,
		CgroupRoot: "/sys/fs/cgroup/bench",
	}, cfg.AccountingOptions())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `accounting = "cgroup"`)

	cfg, err := load(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "cgroup", cfg.Accounting)
	assert.Equal(t, 2, cfg.Precision)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
accounting = "rusage"
`)

	cfg, err := load(path, env(map[string]string{
		EnvLogLevel:             "error",
		EnvAccounting:           "cgroup",
		EnvCgroupRoot:           "/tmp/cg",
		EnvTerminateDescendants: "1",
	}))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "cgroup", cfg.Accounting)
	assert.Equal(t, "/tmp/cg", cfg.CgroupRoot)
	assert.True(t, cfg.TerminateDescendants)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "unknown key", content: `colour = "always"`},
		{name: "bad syntax", content: `log_level = `},
		{name: "bad backend", content: `accounting = "ptrace"`},
		{name: "bad level", content: `log_level = "loud"`},
		{name: "bad precision", content: `precision = 12`},
		{name: "bad env bool", env: map[string]string{EnvTerminateDescendants: "maybe"}},
		{name: "bad env level", env: map[string]string{EnvLogLevel: "chatty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := load(path, env(tt.env))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "nope.toml"), env(nil))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMissingDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	cfg, err := load("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	path, err := DefaultPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("precision = 4\n"), 0o644))

	cfg, err := load("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Precision)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("INFO")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	level, err = ParseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLogLevel("")
	require.Error(t, err)
}
