package store

import "time"

// Clock abstracts time for the scheduling and usage-limiting cores so tests
// can drive day rollovers deterministically.
type Clock interface {
	// Now returns the current instant in UTC.
	Now() time.Time

	// Today returns the current UTC calendar day, truncated to midnight.
	// Day-rollover comparisons use Today, never wall-clock differences.
	Today() time.Time
}

// systemClock implements Clock using the real time.
type systemClock struct{}

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
