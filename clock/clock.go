// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package clock supplies timestamps for round-trip measurements.
package clock

import "time"

// Clock produces the timestamps surrounding a probe. The real implementation
// returns time.Time values carrying a monotonic reading, so elapsed
// computations are immune to wall-clock jumps.
type Clock interface {
	Now() time.Time
}

// New returns the system clock.
func New() Clock {
	return sysClock{}
}

type sysClock struct{}

func (sysClock) Now() time.Time {
	return time.Now()
}

// ElapsedMs returns the duration between start and end in milliseconds.
// A reversed pair clamps to zero rather than going negative.
func ElapsedMs(start, end time.Time) float64 {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return float64(d.Nanoseconds()) / float64(time.Millisecond)
}
