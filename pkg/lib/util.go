package lib

import (
	"github.com/google/uuid"
)

// NewContainerName returns a unique name for a per-run accounting group,
// based on a UUID version 4 (RFC 4122).
func NewContainerName() string {
	return "chronos-" + uuid.NewString()
}
