package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicks(t *testing.T) {
	assert.Equal(t, Ticks(15_000_000), TicksFromDuration(1500*time.Millisecond))
	assert.Equal(t, Ticks(0), TicksFromDuration(99*time.Nanosecond))
	assert.Equal(t, Ticks(25_000_000), TicksFromMicroseconds(2_500_000))

	assert.Equal(t, 250*time.Millisecond, Ticks(2_500_000).Duration())
	assert.InDelta(t, 1.5, Ticks(15_000_000).Seconds(), 1e-9)
	assert.InDelta(t, 0.0000001, Ticks(1).Seconds(), 1e-12)
}
