//go:build unix && !linux

package accounting

import "fmt"

func newContainer(opts Options) (Container, error) {
	switch opts.Backend {
	case BackendAuto, BackendRusage:
		return NewRusage()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, opts.Backend)
	}
}
