//go:build windows

package accounting

import "fmt"

func newContainer(opts Options) (Container, error) {
	switch opts.Backend {
	case BackendAuto, BackendJob:
		return NewJobObject()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, opts.Backend)
	}
}
