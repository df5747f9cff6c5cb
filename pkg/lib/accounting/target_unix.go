//go:build unix

package accounting

import (
	"errors"
	"fmt"
	"os/exec"
)

// Target is a process about to be attached. On unix it is a prepared command
// that has not been forked yet, so the backend can decide how the kernel
// creates it.
type Target struct {
	Cmd *exec.Cmd
}

func (t Target) validate() error {
	if t.Cmd == nil {
		return errors.New("no command to attach")
	}
	if t.Cmd.Process != nil {
		return fmt.Errorf("process %d is already running", t.Cmd.Process.Pid)
	}
	return nil
}
