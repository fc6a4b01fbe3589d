package mocks

import (
	"sync"
	"time"
)

// FakeClock implements store.Clock with a settable instant.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock creates a FakeClock pinned to the given instant.
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now.UTC()}
}

// Now returns the pinned instant.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Today returns the pinned instant's UTC calendar day.
func (c *FakeClock) Today() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Truncate(24 * time.Hour)
}

// SetNow moves the clock to the given instant.
func (c *FakeClock) SetNow(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now.UTC()
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
