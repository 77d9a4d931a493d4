package game

import (
	"sync"
	"time"
)

// Clock supplies frame timestamps to the driver.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock with its monotonic reading.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a controllable clock for tests and headless runs.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// FrameTime returns the timestamp of frame n at fps frames per second.
// Frames are placed by total elapsed time, so rounding does not accumulate.
func FrameTime(start time.Time, n int64, fps int) time.Time {
	if fps <= 0 {
		fps = 60
	}
	return start.Add(time.Duration(n * int64(time.Second) / int64(fps)))
}
