package carousel

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const fadeEpsilon = 0.01

// Fade eases a caption's opacity between hidden and shown. Unlike the
// strip's spring it is stepped once per frame at a fixed rate, and it
// satisfies anim.Model so it runs on the same frame loop.
type Fade struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

// NewFade creates a shown fade stepped at fps frames per second.
func NewFade(fps int) *Fade {
	return &Fade{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
		pos:    1,
		target: 1,
	}
}

// Show targets full opacity.
func (f *Fade) Show() { f.target = 1 }

// Hide targets zero opacity.
func (f *Fade) Hide() { f.target = 0 }

// Step advances one frame.
func (f *Fade) Step() {
	f.pos, f.vel = f.spring.Update(f.pos, f.vel, f.target)
	if f.Done() {
		f.pos, f.vel = f.target, 0
	}
}

// Opacity returns the current opacity clamped to [0, 1].
func (f *Fade) Opacity() float64 {
	return math.Max(0, math.Min(1, f.pos))
}

func (f *Fade) X() float64  { return f.Opacity() }
func (f *Fade) DX() float64 { return f.vel }

func (f *Fade) Done() bool {
	return math.Abs(f.pos-f.target) < fadeEpsilon && math.Abs(f.vel) < fadeEpsilon
}
