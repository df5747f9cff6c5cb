//go:build !unix && !windows

package runner

import (
	"errors"

	"github.com/grigory-rechistov/chronos/pkg/lib"
)

func newProcess(command lib.Command) (process, error) {
	return nil, errors.ErrUnsupported
}
