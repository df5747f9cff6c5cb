package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}))
}

func printPrefixed(w io.Writer, prefix *color.Color, label string, err error) {
	if isTerminal(w) {
		prefix.EnableColor()
	} else {
		prefix.DisableColor()
	}
	prefix.Fprint(w, label)
	fmt.Fprintf(w, " %v\n", err)
}

func printError(w io.Writer, err error) {
	printPrefixed(w, color.New(color.FgRed, color.Bold), "chronos:", err)
}

// printWarning reports a condition that did not stop the measurement.
func printWarning(w io.Writer, err error) {
	printPrefixed(w, color.New(color.FgYellow), "Warning:", err)
}
