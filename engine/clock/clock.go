// Package clock provides the frame clock owned by the frame loop.
package clock

import "time"

// Clock measures time between frames.
type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time
	delta time.Duration
	total time.Duration
	frame uint64
}

// New creates a Clock started at the current time.
//
// Parameters:
//   - now: the time source, or nil for time.Now
//
// Returns:
//   - *Clock: the started clock
func New(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Clock{now: now, start: t, last: t}
}

// Tick advances the clock to the current time.
//
// Returns:
//   - time.Duration: time since the previous Tick
func (c *Clock) Tick() time.Duration {
	t := c.now()
	c.delta = t.Sub(c.last)
	c.last = t
	c.total = t.Sub(c.start)
	c.frame++
	return c.delta
}

// Delta returns the duration measured by the last Tick.
func (c *Clock) Delta() time.Duration { return c.delta }

// DeltaSeconds returns Delta in seconds.
func (c *Clock) DeltaSeconds() float32 { return float32(c.delta.Seconds()) }

// Total returns the time from creation to the last Tick.
func (c *Clock) Total() time.Duration { return c.total }

// Frame returns the number of Ticks so far.
func (c *Clock) Frame() uint64 { return c.frame }
