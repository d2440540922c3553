package sim

import "time"

// Clock is the simulation timeline. The engine never reads the wall
// clock; the driver advances the Clock by a fixed step each tick, which
// keeps every timer and cooldown deterministic and testable.
type Clock struct {
	now time.Duration
}

// NewClock creates a clock at simulation time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the elapsed simulation time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Advance moves the timeline forward. Negative steps are ignored.
func (c *Clock) Advance(dt time.Duration) {
	if dt > 0 {
		c.now += dt
	}
}
