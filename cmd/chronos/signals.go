package main

import (
	"log/slog"
	"os"
	"os/signal"
)

// ignoreInterrupts keeps chronos alive on terminal interrupts while the
// program runs, so the program alone decides how to react and the report
// is still printed. The signals are caught rather than ignored: ignored
// dispositions would be inherited by the program.
func ignoreInterrupts(logger *slog.Logger) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, interruptSignals...)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-ch:
				logger.Debug("ignoring signal while the program runs", "signal", sig.String())
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
