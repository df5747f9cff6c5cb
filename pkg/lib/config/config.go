// Package config loads chronos settings from an optional TOML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/grigory-rechistov/chronos/pkg/lib/accounting"
)

// Environment variables that override the file.
const (
	EnvLogLevel             = "CHRONOS_LOG_LEVEL"
	EnvAccounting           = "CHRONOS_ACCOUNTING"
	EnvCgroupRoot           = "CHRONOS_CGROUP_ROOT"
	EnvTerminateDescendants = "CHRONOS_TERMINATE_DESCENDANTS"
)

const maxPrecision = 9

type Config struct {
	LogLevel             string `toml:"log_level"`
	Accounting           string `toml:"accounting"`
	CgroupRoot           string `toml:"cgroup_root"`
	TerminateDescendants bool   `toml:"terminate_descendants"`
	Precision            int    `toml:"precision"`
}

func Default() Config {
	return Config{
		LogLevel:   "warn",
		Accounting: string(accounting.BackendAuto),
		Precision:  2,
	}
}

// DefaultPath is config.toml in the chronos directory of the user
// configuration dir ($XDG_CONFIG_HOME on Linux).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chronos", "config.toml"), nil
}

// Load reads the file at path and applies environment overrides. An empty
// path means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			// no home: run with defaults
			path = ""
		}
	}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := cfg.applyEnv(lookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookupEnv(EnvAccounting); ok && v != "" {
		c.Accounting = v
	}
	if v, ok := lookupEnv(EnvCgroupRoot); ok && v != "" {
		c.CgroupRoot = v
	}
	if v, ok := lookupEnv(EnvTerminateDescendants); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTerminateDescendants, err)
		}
		c.TerminateDescendants = b
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := accounting.ParseBackend(c.Accounting); err != nil {
		return err
	}
	if c.Precision < 0 || c.Precision > maxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", maxPrecision, c.Precision)
	}
	return nil
}

// AccountingOptions converts the accounting settings. Call Validate first.
func (c Config) AccountingOptions() accounting.Options {
	backend, _ := accounting.ParseBackend(c.Accounting)
	return accounting.Options{Backend: backend, CgroupRoot: c.CgroupRoot}
}

// ParseLogLevel accepts debug, info, warn and error, case-insensitively.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
