// Package spring solves the damped harmonic oscillator m·x'' + c·x' + k·x = 0
// in closed form, relative to a movable equilibrium.
//
// Timestamps passed to a Spring are milliseconds; the solution itself is
// evaluated in seconds, so every elapsed time is divided by 1000 before it
// reaches the solved equation.
package spring

import "math"

// Epsilon is the tolerance used for settling and no-op detection.
const Epsilon = 0.001

// Regime classifies the spring constants by the sign of c² − 4mk.
type Regime uint8

const (
	Critical Regime = iota
	Overdamped
	Underdamped
)

func (r Regime) String() string {
	switch r {
	case Critical:
		return "critical"
	case Overdamped:
		return "overdamped"
	default:
		return "underdamped"
	}
}

// Spring is a stateful analytic solver. It is not safe for concurrent use;
// callers drive it from a single UI loop.
type Spring struct {
	mass  float64
	k     float64
	c     float64
	end   float64
	sol   solution
	start float64 // ms timestamp the solution is anchored at
}

// Option configures a Spring at construction.
type Option func(*Spring)

// WithMass overrides the default unit mass.
func WithMass(m float64) Option {
	return func(s *Spring) { s.mass = m }
}

// New creates a spring with stiffness k and damping c. Mass defaults to 1.
// The spring has no solution until Snap or SetEnd is called.
func New(k, c float64, opts ...Option) (*Spring, error) {
	s := &Spring{mass: 1, k: k, c: c}
	for _, opt := range opts {
		opt(s)
	}
	if err := validate(s.mass, s.k, s.c); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew is like New but panics on invalid constants.
func MustNew(k, c float64, opts ...Option) *Spring {
	s, err := New(k, c, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Snap moves the equilibrium to end and discards any motion in flight.
func (s *Spring) Snap(end, now float64) {
	s.end = end
	s.sol = rest{}
	s.start = now
}

// SetEnd retargets the equilibrium at time now. A non-zero velocity replaces
// the current velocity (a release fling); a zero velocity keeps whatever
// velocity the spring already has so motion stays continuous.
func (s *Spring) SetEnd(end, velocity, now float64) {
	if s.sol != nil && end == s.end && almostZero(velocity) {
		return
	}

	position := s.end
	if s.sol != nil {
		dt := s.elapsed(now)
		if almostZero(velocity) {
			velocity = s.sol.velocity(dt)
		}
		rel := s.sol.position(dt)
		if almostZero(velocity) {
			velocity = 0
		}
		if almostZero(rel) {
			rel = 0
		}
		position += rel
	}

	if s.sol != nil && almostZero(position-end) && almostZero(velocity) {
		return
	}

	s.end = end
	s.sol = s.solve(position-end, velocity)
	s.start = now
}

// X returns the absolute position at time now.
func (s *Spring) X(now float64) float64 {
	return s.Position(s.elapsed(now))
}

// DX returns the velocity at time now.
func (s *Spring) DX(now float64) float64 {
	return s.VelocityAt(s.elapsed(now))
}

// Velocity returns the velocity at time now.
func (s *Spring) Velocity(now float64) float64 {
	return s.DX(now)
}

// Position returns the absolute position dt seconds after the solution start.
func (s *Spring) Position(dt float64) float64 {
	if s.sol == nil {
		return s.end
	}
	return s.end + s.sol.position(dt)
}

// VelocityAt returns the velocity dt seconds after the solution start.
func (s *Spring) VelocityAt(dt float64) float64 {
	if s.sol == nil {
		return 0
	}
	return s.sol.velocity(dt)
}

// Done reports whether the spring has settled at its equilibrium. A spring
// that was never snapped or targeted is not done.
func (s *Spring) Done(now float64) bool {
	if s.sol == nil {
		return false
	}
	dt := s.elapsed(now)
	return almostZero(s.Position(dt)-s.end) && almostZero(s.VelocityAt(dt))
}

// Reconfigure replaces the physical constants without moving the
// equilibrium. A settled spring only stores them; a moving one is re-solved
// from its current state so there is no jump.
func (s *Spring) Reconfigure(mass, k, c, now float64) error {
	if err := validate(mass, k, c); err != nil {
		return err
	}
	settled := s.sol == nil || s.Done(now)
	var x0, v0 float64
	if !settled {
		dt := s.elapsed(now)
		x0 = s.sol.position(dt)
		v0 = s.sol.velocity(dt)
	}
	s.mass, s.k, s.c = mass, k, c
	if settled {
		return nil
	}
	s.sol = s.solve(x0, v0)
	s.start = now
	return nil
}

// EndValue returns the current equilibrium.
func (s *Spring) EndValue() float64 { return s.end }

// SpringConstant returns k.
func (s *Spring) SpringConstant() float64 { return s.k }

// Damping returns c.
func (s *Spring) Damping() float64 { return s.c }

// Mass returns m.
func (s *Spring) Mass() float64 { return s.mass }

// Regime reports which closed form the current constants select.
func (s *Spring) Regime() Regime {
	return regimeOf(s.mass, s.k, s.c)
}

func (s *Spring) elapsed(now float64) float64 {
	return (now - s.start) / 1000
}

// solve builds the solution for relative position x0 and velocity v0 at t=0.
func (s *Spring) solve(x0, v0 float64) solution {
	m, k, c := s.mass, s.k, s.c
	disc := c*c - 4*m*k

	switch regimeOf(m, k, c) {
	case Critical:
		r := -c / (2 * m)
		return critical{r: r, c1: x0, c2: v0 - r*x0}
	case Overdamped:
		root := math.Sqrt(disc)
		r1 := (-c - root) / (2 * m)
		r2 := (-c + root) / (2 * m)
		c2 := (v0 - r1*x0) / (r2 - r1)
		return overdamped{r1: r1, r2: r2, c1: x0 - c2, c2: c2}
	default:
		r := -c / (2 * m)
		w := math.Sqrt(4*m*k-c*c) / (2 * m)
		return underdamped{r: r, w: w, c1: x0, c2: (v0 - r*x0) / w}
	}
}

func regimeOf(m, k, c float64) Regime {
	disc := c*c - 4*m*k
	switch {
	case disc == 0:
		return Critical
	case disc > 0:
		return Overdamped
	default:
		return Underdamped
	}
}

func almostZero(v float64) bool {
	return math.Abs(v) < Epsilon
}
