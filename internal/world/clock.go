package world

import "time"

// Clock is the simulation clock. Durations accumulate as integer nanoseconds
// so a fixed tick lands exactly on whole seconds. Advanced by the driver
// between ticks; systems only read it.
type Clock struct {
	elapsed time.Duration
	delta   time.Duration
	ticks   uint64
}

// Now returns elapsed simulation seconds at the start of the current tick.
func (c *Clock) Now() float64 { return c.elapsed.Seconds() }

// Delta returns the current tick length in seconds.
func (c *Clock) Delta() float64 { return c.delta.Seconds() }

func (c *Clock) Elapsed() time.Duration { return c.elapsed }
func (c *Clock) Ticks() uint64          { return c.ticks }

// Begin sets the length of the tick about to run.
func (c *Clock) Begin(dt time.Duration) { c.delta = dt }

// Advance closes the tick.
func (c *Clock) Advance() {
	c.elapsed += c.delta
	c.ticks++
}
