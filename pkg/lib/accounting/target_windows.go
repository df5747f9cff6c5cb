//go:build windows

package accounting

import "golang.org/x/sys/windows"

// Target is a process about to be attached: a handle to a process created
// suspended.
type Target struct {
	Process windows.Handle
}
