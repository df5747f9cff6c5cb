//go:build windows

package accounting

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/grigory-rechistov/chronos/pkg/lib"
)

// JOBOBJECT_BASIC_ACCOUNTING_INFORMATION
type jobObjectBasicAccounting struct {
	TotalUserTime             int64
	TotalKernelTime           int64
	ThisPeriodTotalUserTime   int64
	ThisPeriodTotalKernelTime int64
	TotalPageFaultCount       uint32
	TotalProcesses            uint32
	ActiveProcesses           uint32
	TotalTerminatedProcesses  uint32
}

// JobObject is an anonymous Windows job. Processes created by a member
// join the job automatically and the kernel keeps their accounting after
// they exit.
type JobObject struct {
	handle windows.Handle
}

func NewJobObject() (*JobObject, error) {
	h, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateJobObject: %w", err)
	}
	return &JobObject{handle: h}, nil
}

func (j *JobObject) Attach(t Target) error {
	if j.handle == 0 {
		return ErrReleased
	}
	if err := windows.AssignProcessToJobObject(j.handle, t.Process); err != nil {
		return fmt.Errorf("AssignProcessToJobObject: %w", err)
	}
	return nil
}

func (j *JobObject) Query() (Counters, error) {
	if j.handle == 0 {
		return Counters{}, ErrReleased
	}

	var info jobObjectBasicAccounting
	err := windows.QueryInformationJobObject(
		j.handle,
		windows.JobObjectBasicAccountingInformation,
		uintptr(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
		nil,
	)
	if err != nil {
		return Counters{}, fmt.Errorf("QueryInformationJobObject: %w", err)
	}

	return Counters{
		User:            lib.Ticks(info.TotalUserTime),
		Kernel:          lib.Ticks(info.TotalKernelTime),
		PageFaults:      uint64(info.TotalPageFaultCount),
		ActiveProcesses: info.ActiveProcesses,
	}, nil
}

func (j *JobObject) Terminate() error {
	if j.handle == 0 {
		return ErrReleased
	}
	return windows.TerminateJobObject(j.handle, 127)
}

// Release closes the job handle. Without JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE
// members keep running.
func (j *JobObject) Release() error {
	if j.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(j.handle)
	j.handle = 0
	return err
}
