//go:build !unix && !windows

package accounting

import "fmt"

func newContainer(opts Options) (Container, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, opts.Backend)
}
