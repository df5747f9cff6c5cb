//go:build linux

package accounting

import "fmt"

func newContainer(opts Options) (Container, error) {
	switch opts.Backend {
	case BackendCgroup:
		return NewCgroup(opts.CgroupRoot)
	case BackendRusage:
		return NewRusage()
	case BackendAuto:
		cg, err := NewCgroup(opts.CgroupRoot)
		if err == nil {
			return cg, nil
		}
		logger.Debug("cgroup accounting unavailable, falling back to rusage", "err", err)
		return NewRusage()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, opts.Backend)
	}
}
