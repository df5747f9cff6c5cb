package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grigory-rechistov/chronos/pkg/lib"
	"github.com/grigory-rechistov/chronos/pkg/lib/accounting"
	"github.com/grigory-rechistov/chronos/pkg/lib/config"
	"github.com/grigory-rechistov/chronos/pkg/lib/report"
	"github.com/grigory-rechistov/chronos/pkg/lib/runner"
)

const (
	ExitUsage       = 1
	ExitCoreFailure = 127
)

// exitError carries the exit status of a failure that happened after the
// command line was accepted.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

type rootOptions struct {
	verbose     bool
	output      string
	metricsFile string
	configPath  string
	logLevel    string
	accounting  string
}

func NewRootCmd(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "chronos [flags] [--] program [args...]",
		Short: "Run a program and report the time its whole process tree used",
		Long: "chronos runs program with args, waits for it to exit and reports wall clock,\n" +
			"user and system time of the program and every process it started.\n" +
			"The exit status of chronos is the exit status of the program.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("program to run is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			code, err := timeCommand(cfg, opts, lib.Command{Command: args[0], Args: args[1:]}, stdout, stderr)
			if err != nil {
				return err
			}
			*exitCode = code
			return nil
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.Flags()
	flags.SetInterspersed(false)
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print the detailed report")
	flags.StringVarP(&opts.output, "output", "o", "", "write the report to `file` instead of standard output")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "also write the metrics in Prometheus text format to `file`")
	flags.StringVar(&opts.configPath, "config", "", "configuration `file` (default $XDG_CONFIG_HOME/chronos/config.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.accounting, "accounting", "", "accounting backend: auto, job, cgroup or rusage")

	return root
}

// loadConfig merges the configuration file, the environment and the flags,
// in increasing order of priority.
func loadConfig(cmd *cobra.Command, opts rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if cmd.Flags().Changed("accounting") {
		cfg.Accounting = opts.accounting
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func timeCommand(cfg config.Config, opts rootOptions, command lib.Command, stdout, stderr io.Writer) (int, error) {
	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := newLogger(stderr, level)
	runner.SetLogger(logger)
	accounting.SetLogger(logger)

	r := runner.NewRunner(
		runner.WithAccounting(cfg.AccountingOptions()),
		runner.WithTerminateDescendants(cfg.TerminateDescendants),
	)

	stop := ignoreInterrupts(logger)
	res, err := r.Run(command)
	stop()
	if err != nil {
		return 0, &exitError{code: ExitCoreFailure, err: err}
	}

	if res.Warning != nil {
		printWarning(stderr, res.Warning)
	}

	// the output file is only touched once there is a report to put in it
	out := stdout
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return 0, &exitError{code: ExitCoreFailure, err: fmt.Errorf("cannot open output file: %w", err)}
		}
		defer f.Close()
		out = f
	}

	// keep the report apart from whatever the program printed
	if _, err := fmt.Fprintln(out); err != nil {
		return 0, &exitError{code: ExitCoreFailure, err: err}
	}
	if err := report.Write(out, res.Command, res.Metrics, report.Options{Verbose: opts.verbose, Precision: cfg.Precision}); err != nil {
		return 0, &exitError{code: ExitCoreFailure, err: fmt.Errorf("cannot write report: %w", err)}
	}

	if opts.metricsFile != "" {
		if err := report.WriteTextfile(opts.metricsFile, res.Command, res.Metrics); err != nil {
			logger.Error("cannot write metrics file", "path", opts.metricsFile, "err", err)
		}
	}

	return res.Metrics.ExitCode, nil
}

// run executes chronos with args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	exitCode := 0
	root := NewRootCmd(stdout, stderr, &exitCode)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return exitCode
	}

	printError(stderr, err)
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
	return ExitUsage
}
