//go:build windows

package runner

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/windows"

	"github.com/grigory-rechistov/chronos/pkg/lib"
	"github.com/grigory-rechistov/chronos/pkg/lib/accounting"
)

// windowsProcess is created with CREATE_SUSPENDED: its initial thread does
// not run until resume.
type windowsProcess struct {
	info windows.ProcessInformation
}

func newProcess(command lib.Command) (process, error) {
	cmdLine, err := windows.UTF16PtrFromString(windows.ComposeCommandLine(command.Argv()))
	if err != nil {
		return nil, err
	}

	var startup windows.StartupInfo
	if err := windows.GetStartupInfo(&startup); err != nil {
		return nil, fmt.Errorf("GetStartupInfo: %w", err)
	}

	var info windows.ProcessInformation
	err = windows.CreateProcess(nil, cmdLine, nil, nil, true, windows.CREATE_SUSPENDED, nil, nil, &startup, &info)
	if err != nil {
		return nil, err
	}

	return &windowsProcess{info: info}, nil
}

func (p *windowsProcess) target() accounting.Target {
	return accounting.Target{Process: p.info.Process}
}

func (p *windowsProcess) pid() int {
	return int(p.info.ProcessId)
}

func (p *windowsProcess) resume() error {
	if _, err := windows.ResumeThread(p.info.Thread); err != nil {
		return fmt.Errorf("ResumeThread: %w", err)
	}
	return nil
}

func (p *windowsProcess) wait() (int, lib.ProcessTimes, error) {
	event, err := windows.WaitForSingleObject(p.info.Process, windows.INFINITE)
	if err != nil {
		return 0, lib.ProcessTimes{}, err
	}
	if event != windows.WAIT_OBJECT_0 {
		return 0, lib.ProcessTimes{}, fmt.Errorf("unexpected wait result %#x", event)
	}

	var code uint32
	if err := windows.GetExitCodeProcess(p.info.Process, &code); err != nil {
		return 0, lib.ProcessTimes{}, fmt.Errorf("GetExitCodeProcess: %w", err)
	}

	// Kernel and user time of the primary alone are not used: the job
	// object reports them for the whole tree.
	var created, exited, kernel, user windows.Filetime
	if err := windows.GetProcessTimes(p.info.Process, &created, &exited, &kernel, &user); err != nil {
		return 0, lib.ProcessTimes{}, fmt.Errorf("GetProcessTimes: %w", err)
	}

	times := lib.ProcessTimes{
		Created: time.Unix(0, created.Nanoseconds()),
		Exited:  time.Unix(0, exited.Nanoseconds()),
	}
	return int(code), times, nil
}

func (p *windowsProcess) kill() error {
	if p.info.Process == 0 {
		return nil
	}
	return windows.TerminateProcess(p.info.Process, 127)
}

func (p *windowsProcess) close() error {
	var errs []error
	if p.info.Thread != 0 {
		errs = append(errs, windows.CloseHandle(p.info.Thread))
		p.info.Thread = 0
	}
	if p.info.Process != 0 {
		errs = append(errs, windows.CloseHandle(p.info.Process))
		p.info.Process = 0
	}
	return errors.Join(errs...)
}
