//go:build unix

package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/grigory-rechistov/chronos/pkg/lib"
	"github.com/grigory-rechistov/chronos/pkg/lib/accounting"
)

// unixProcess is prepared but not forked until resume. The accounting
// container configures how the kernel creates it, so it never runs outside
// the container.
type unixProcess struct {
	cmd     *exec.Cmd
	created time.Time
}

func newProcess(command lib.Command) (process, error) {
	path, err := exec.LookPath(command.Command)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(path, command.Args...)
	cmd.Args[0] = command.Command
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr

	return &unixProcess{cmd: cmd}, nil
}

func (p *unixProcess) target() accounting.Target {
	return accounting.Target{Cmd: p.cmd}
}

func (p *unixProcess) pid() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

func (p *unixProcess) resume() error {
	p.created = time.Now()
	if err := p.cmd.Start(); err != nil {
		if attr := p.cmd.SysProcAttr; attr != nil && joinsCgroup(attr) {
			return fmt.Errorf("%w: %w", errAttachAtStart, err)
		}
		return err
	}
	return nil
}

func (p *unixProcess) wait() (int, lib.ProcessTimes, error) {
	err := p.cmd.Wait()
	times := lib.ProcessTimes{Created: p.created, Exited: time.Now()}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return 0, times, err
		}
	}
	return exitStatus(p.cmd.ProcessState), times, nil
}

// exitStatus follows the shell convention of 128+N for a process killed by
// signal N.
func exitStatus(state *os.ProcessState) int {
	if status, ok := state.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return state.ExitCode()
}

func (p *unixProcess) kill() error {
	if p.cmd.Process == nil || p.cmd.ProcessState != nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

func (p *unixProcess) close() error {
	return nil
}
