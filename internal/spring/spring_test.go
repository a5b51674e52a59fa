package spring

import (
	"errors"
	"math"
	"testing"
)

func TestNewRejectsInvalidConstants(t *testing.T) {
	tests := []struct {
		name string
		k, c float64
		opts []Option
		want error
	}{
		{name: "zero stiffness", k: 0, c: 10, want: ErrInvalidStiffness},
		{name: "negative stiffness", k: -1, c: 10, want: ErrInvalidStiffness},
		{name: "negative damping", k: 100, c: -1, want: ErrInvalidDamping},
		{name: "zero mass", k: 100, c: 10, opts: []Option{WithMass(0)}, want: ErrInvalidMass},
		{name: "NaN mass", k: 100, c: 10, opts: []Option{WithMass(math.NaN())}, want: ErrInvalidMass},
		{name: "undamped is allowed", k: 100, c: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.k, tt.c, tt.opts...)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("New() error = %v", err)
				}
				if s.Mass() != 1 {
					t.Fatalf("expected default mass 1, got %v", s.Mass())
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMustNewPanicsOnInvalidConstants(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustNew(-5, 1)
}

func TestUnsolvedSpringDefaults(t *testing.T) {
	s := MustNew(230, 30)
	if got := s.X(12345); got != 0 {
		t.Fatalf("expected x=0 before any solve, got %v", got)
	}
	if got := s.DX(12345); got != 0 {
		t.Fatalf("expected dx=0 before any solve, got %v", got)
	}
	if s.Done(12345) {
		t.Fatal("expected unsolved spring not to be done")
	}
}

func TestSnapIsExact(t *testing.T) {
	s := MustNew(230, 30)
	s.SetEnd(100, -500, 0)

	s.Snap(42, 250)
	if got := s.X(250); got != 42 {
		t.Fatalf("expected x=42 right after snap, got %v", got)
	}
	if got := s.DX(250); got != 0 {
		t.Fatalf("expected dx=0 right after snap, got %v", got)
	}
	if !s.Done(250) {
		t.Fatal("expected snapped spring to be done")
	}
	if s.EndValue() != 42 {
		t.Fatalf("expected end value 42, got %v", s.EndValue())
	}
}

func TestSetEndIsContinuous(t *testing.T) {
	s := MustNew(230, 30)
	s.Snap(0, 1000)
	s.SetEnd(100, 0, 1000)

	retargets := []struct {
		at  float64
		end float64
	}{
		{at: 1050, end: 250},
		{at: 1120, end: -80},
		{at: 1121, end: -80.5},
		{at: 1400, end: 0},
	}

	for _, r := range retargets {
		x, dx := s.X(r.at), s.DX(r.at)
		s.SetEnd(r.end, 0, r.at)
		if got := s.X(r.at); math.Abs(got-x) > Epsilon {
			t.Fatalf("position jumped at %v: %v -> %v", r.at, x, got)
		}
		if got := s.DX(r.at); math.Abs(got-dx) > Epsilon {
			t.Fatalf("velocity jumped at %v: %v -> %v", r.at, dx, got)
		}
		if got := s.X(r.at + 1); math.Abs(got-x) > 5 {
			t.Fatalf("position moved too far 1ms after retarget: %v -> %v", x, got)
		}
	}
}

func TestSetEndIsIdempotentWhenSettled(t *testing.T) {
	s := MustNew(230, 30)
	s.Snap(0, 0)
	s.SetEnd(50, 0, 0)
	if !s.Done(5000) {
		t.Fatal("expected spring to settle")
	}

	s.SetEnd(50, 0, 5000)
	sol, start := s.sol, s.start
	s.SetEnd(50, 0, 5000)
	if s.sol != sol || s.start != start {
		t.Fatal("expected repeated SetEnd to leave the solution untouched")
	}
}

func TestSetEndNoOpWhenAlreadyAtTarget(t *testing.T) {
	s := MustNew(230, 30)
	s.Snap(10, 0)
	s.SetEnd(20, 0, 0)
	sol, start := s.sol, s.start

	// Settled at 20; asking for a target within epsilon of the current
	// position is a no-op.
	s.SetEnd(20.0005, 0, 10000)
	if s.sol != sol || s.start != start {
		t.Fatal("expected near-identical target to be ignored")
	}
}

func TestConvergesInEveryRegime(t *testing.T) {
	tests := []struct {
		name   string
		k, c   float64
		mass   float64
		regime Regime
	}{
		{name: "underdamped", k: 230, c: 30, mass: 1, regime: Underdamped},
		{name: "overdamped", k: 230, c: 40, mass: 1, regime: Overdamped},
		{name: "critical", k: 225, c: 30, mass: 1, regime: Critical},
		{name: "critical heavy", k: 50, c: 20, mass: 2, regime: Critical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MustNew(tt.k, tt.c, WithMass(tt.mass))
			if s.Regime() != tt.regime {
				t.Fatalf("expected %v, got %v", tt.regime, s.Regime())
			}
			s.Snap(0, 0)
			s.SetEnd(100, 300, 0)
			if s.Done(0) {
				t.Fatal("expected moving spring not to be done")
			}

			for now := 4000.0; now <= 10000; now += 100 {
				if !s.Done(now) {
					t.Fatalf("expected done at %vms (x=%v dx=%v)", now, s.X(now), s.DX(now))
				}
				if math.Abs(s.X(now)-100) >= Epsilon {
					t.Fatalf("expected x near 100 at %vms, got %v", now, s.X(now))
				}
			}
		})
	}
}

func TestCriticalBranchSelected(t *testing.T) {
	s := MustNew(225, 30)
	s.Snap(0, 0)
	s.SetEnd(10, 0, 0)

	if _, ok := s.sol.(critical); !ok {
		t.Fatalf("expected critical solution, got %T", s.sol)
	}
	for now := 0.0; now <= 2000; now += 16 {
		x, dx := s.X(now), s.DX(now)
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(dx) || math.IsInf(dx, 0) {
			t.Fatalf("non-finite sample at %vms: x=%v dx=%v", now, x, dx)
		}
	}
	// Critically damped motion from rest never crosses the target.
	for now := 0.0; now <= 2000; now += 1 {
		if s.X(now) > 10+1e-9 {
			t.Fatalf("overshoot at %vms: %v", now, s.X(now))
		}
	}
}

func TestSolutionsMatchInitialConditions(t *testing.T) {
	tests := []struct {
		name string
		k, c float64
	}{
		{name: "underdamped", k: 230, c: 30},
		{name: "overdamped", k: 230, c: 45},
		{name: "critical", k: 225, c: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MustNew(tt.k, tt.c)
			sol := s.solve(-37, 512)
			if got := sol.position(0); math.Abs(got+37) > 1e-9 {
				t.Fatalf("x(0) = %v, want -37", got)
			}
			if got := sol.velocity(0); math.Abs(got-512) > 1e-9 {
				t.Fatalf("x'(0) = %v, want 512", got)
			}

			// The solution must satisfy m·x'' + c·x' + k·x = 0.
			const h = 1e-5
			for _, tm := range []float64{0.01, 0.05, 0.2} {
				acc := (sol.velocity(tm+h) - sol.velocity(tm-h)) / (2 * h)
				residual := acc + tt.c*sol.velocity(tm) + tt.k*sol.position(tm)
				if math.Abs(residual) > 1e-2 {
					t.Fatalf("residual at t=%v is %v", tm, residual)
				}
			}
		})
	}
}

func TestSwipeReleaseScenario(t *testing.T) {
	s := MustNew(230, 30)
	s.Snap(0, 0)
	s.SetEnd(375, -800, 0)

	if got := s.DX(0); math.Abs(got+800) > Epsilon {
		t.Fatalf("expected initial velocity -800, got %v", got)
	}
	if s.Velocity(120) != s.DX(120) {
		t.Fatalf("expected Velocity to match DX, got %v and %v", s.Velocity(120), s.DX(120))
	}

	maxX := math.Inf(-1)
	for now := 0.0; now <= 3000; now++ {
		maxX = math.Max(maxX, s.X(now))
	}
	if over := maxX - 375; over > 0.03*375 {
		t.Fatalf("overshoot %v exceeds 3%% of travel", over)
	}

	prev := s.X(10)
	for now := 11.0; now <= 1000; now++ {
		x := s.X(now)
		if x < prev-1e-9 {
			t.Fatalf("approach not monotonic at %vms: %v < %v", now, x, prev)
		}
		prev = x
	}

	if got := s.X(700); math.Abs(got-375) > 1 {
		t.Fatalf("expected x near 375 at 700ms, got %v", got)
	}
	for now := 1500.0; now <= 4000; now += 50 {
		if !s.Done(now) {
			t.Fatalf("expected done at %vms", now)
		}
	}
}

func TestReconfigureWhileMovingPreservesState(t *testing.T) {
	s := MustNew(230, 30)
	s.Snap(0, 0)
	s.SetEnd(200, 0, 0)

	x, dx := s.X(80), s.DX(80)
	if err := s.Reconfigure(1, 120, 12, 80); err != nil {
		t.Fatalf("Reconfigure() error = %v", err)
	}
	if s.start != 80 {
		t.Fatalf("expected start reset to 80, got %v", s.start)
	}
	if got := s.X(80); math.Abs(got-x) > 1e-9 {
		t.Fatalf("position jumped: %v -> %v", x, got)
	}
	if got := s.DX(80); math.Abs(got-dx) > 1e-9 {
		t.Fatalf("velocity jumped: %v -> %v", dx, got)
	}
	if s.SpringConstant() != 120 || s.Damping() != 12 {
		t.Fatalf("constants not applied: k=%v c=%v", s.SpringConstant(), s.Damping())
	}
	if s.EndValue() != 200 {
		t.Fatalf("expected end value kept, got %v", s.EndValue())
	}
}

func TestReconfigureWhenSettledOnlyStoresConstants(t *testing.T) {
	s := MustNew(230, 30)
	s.Snap(5, 0)
	sol, start := s.sol, s.start

	if err := s.Reconfigure(2, 300, 40, 1000); err != nil {
		t.Fatalf("Reconfigure() error = %v", err)
	}
	if s.sol != sol || s.start != start {
		t.Fatal("expected settled spring not to be re-solved")
	}
	if s.Mass() != 2 || s.SpringConstant() != 300 || s.Damping() != 40 {
		t.Fatal("expected constants to be stored")
	}
}

func TestReconfigureRejectsInvalidConstants(t *testing.T) {
	s := MustNew(230, 30)
	if err := s.Reconfigure(1, 230, -3, 0); !errors.Is(err, ErrInvalidDamping) {
		t.Fatalf("expected ErrInvalidDamping, got %v", err)
	}
	if s.Damping() != 30 {
		t.Fatalf("expected damping unchanged, got %v", s.Damping())
	}
}

func TestClockedSamplesThroughClock(t *testing.T) {
	now := 0.0
	s := MustNew(230, 30)
	s.Snap(0, now)
	s.SetEnd(10, 0, now)
	c := Bind(s, func() float64 { return now })

	if c.Done() {
		t.Fatal("expected bound spring to be moving")
	}
	now = 5000
	if !c.Done() {
		t.Fatal("expected bound spring to settle")
	}
	if math.Abs(c.X()-10) > Epsilon || math.Abs(c.DX()) > Epsilon {
		t.Fatalf("unexpected state x=%v dx=%v", c.X(), c.DX())
	}
}
