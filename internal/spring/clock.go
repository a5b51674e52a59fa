package spring

import "time"

// Clock returns the current time in milliseconds.
type Clock func() float64

// Millis converts wall time to the millisecond timestamps a Spring expects.
func Millis(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e6
}

// WallClock reads the system clock.
func WallClock() float64 {
	return Millis(time.Now())
}

// Clocked binds a Spring to a clock so it can be sampled without passing
// timestamps, which is the shape the animation driver consumes.
type Clocked struct {
	*Spring
	Clock Clock
}

// Bind pairs s with clock. A nil clock falls back to WallClock.
func Bind(s *Spring, clock Clock) Clocked {
	if clock == nil {
		clock = WallClock
	}
	return Clocked{Spring: s, Clock: clock}
}

func (c Clocked) X() float64  { return c.Spring.X(c.Clock()) }
func (c Clocked) DX() float64 { return c.Spring.DX(c.Clock()) }
func (c Clocked) Done() bool  { return c.Spring.Done(c.Clock()) }
