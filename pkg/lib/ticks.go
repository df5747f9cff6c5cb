package lib

import "time"

// Ticks counts 100-nanosecond intervals, the unit of Windows FILETIME and of
// job object accounting. All durations stay in Ticks until they are
// formatted.
type Ticks int64

const TicksPerSecond Ticks = 10_000_000

func TicksFromDuration(d time.Duration) Ticks {
	return Ticks(d / 100)
}

func TicksFromMicroseconds(us uint64) Ticks {
	return Ticks(us) * 10
}

func (t Ticks) Duration() time.Duration {
	return time.Duration(t) * 100
}

// Seconds converts to fractional seconds. Only formatters should call it.
func (t Ticks) Seconds() float64 {
	return float64(t) / float64(TicksPerSecond)
}
