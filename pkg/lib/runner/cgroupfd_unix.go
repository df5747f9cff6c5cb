//go:build unix && !linux

package runner

import "syscall"

func joinsCgroup(attr *syscall.SysProcAttr) bool {
	return false
}
