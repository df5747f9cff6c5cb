//go:build !unix && !windows

package accounting

type Target struct{}
