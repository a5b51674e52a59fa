// Package gesture turns a stream of pointer positions into drag deltas and a
// release velocity.
package gesture

import "math"

// Vec is a 2D vector in whatever units the pointer reports (terminal cells).
type Vec struct {
	X, Y float64
}

func (v Vec) Sub(o Vec) Vec             { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec       { return Vec{X: v.X * f, Y: v.Y * f} }
func (v Vec) Lerp(o Vec, t float64) Vec { return Vec{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t} }

// Release is what a finished drag hands to the carousel.
type Release struct {
	Delta    Vec // total displacement since Start
	Velocity Vec // units per second at release
}

// Options tune velocity estimation. Times are milliseconds.
type Options struct {
	// Smoothing is the weight kept from the previous estimate, 0..1.
	Smoothing float64
	// IdleReset zeroes the velocity if the pointer rested this long before
	// release.
	IdleReset float64
	// MinDt is the shortest interval folded into the estimate. Events that
	// arrive closer together are merged into the next sample.
	MinDt float64
	// MaxDt caps the sample interval so a stalled event loop does not
	// collapse the estimate.
	MaxDt float64
}

// DefaultOptions returns the tuning used by the carousel.
func DefaultOptions() Options {
	return Options{Smoothing: 0.5, IdleReset: 120, MinDt: 8, MaxDt: 100}
}

// Tracker follows a single pointer between Start and End.
type Tracker struct {
	opts     Options
	active   bool
	origin   Vec
	last     Vec // position of the last folded sample
	lastTime float64
	cur      Vec // latest reported position
	curTime  float64
	velocity Vec
	samples  int
}

// NewTracker creates a tracker with the given options.
func NewTracker(opts Options) *Tracker {
	return &Tracker{opts: opts}
}

// Active reports whether a drag is in progress.
func (t *Tracker) Active() bool { return t.active }

// Start begins a drag at pos.
func (t *Tracker) Start(pos Vec, now float64) {
	t.active = true
	t.origin = pos
	t.last = pos
	t.lastTime = now
	t.cur = pos
	t.curTime = now
	t.velocity = Vec{}
	t.samples = 0
}

// Move records a pointer sample and returns the displacement from the drag
// origin. Moves outside a drag return the zero vector.
func (t *Tracker) Move(pos Vec, now float64) Vec {
	if !t.active {
		return Vec{}
	}
	t.cur = pos
	t.curTime = now
	t.fold(now)
	return pos.Sub(t.origin)
}

// fold adds the displacement since the last folded sample to the velocity
// estimate once at least MinDt has passed.
func (t *Tracker) fold(now float64) {
	dt := now - t.lastTime
	if dt <= 0 || dt < t.opts.MinDt {
		return
	}
	if t.opts.MaxDt > 0 {
		dt = math.Min(dt, t.opts.MaxDt)
	}
	inst := t.cur.Sub(t.last).Scale(1000 / dt)
	if t.samples == 0 {
		t.velocity = inst
	} else {
		t.velocity = inst.Lerp(t.velocity, t.opts.Smoothing)
	}
	t.samples++
	t.last = t.cur
	t.lastTime = now
}

// End finishes the drag.
func (t *Tracker) End(now float64) Release {
	if !t.active {
		return Release{}
	}
	t.active = false
	if t.cur != t.last {
		t.fold(now)
	}
	v := t.velocity
	if t.opts.IdleReset > 0 && now-t.curTime > t.opts.IdleReset {
		v = Vec{}
	}
	return Release{Delta: t.cur.Sub(t.origin), Velocity: v}
}

// Cancel abandons the drag without producing a release.
func (t *Tracker) Cancel() {
	t.active = false
}
