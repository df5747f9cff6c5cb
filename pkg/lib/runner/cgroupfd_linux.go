//go:build linux

package runner

import "syscall"

func joinsCgroup(attr *syscall.SysProcAttr) bool {
	return attr.UseCgroupFD
}
