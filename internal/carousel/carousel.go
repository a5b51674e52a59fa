// Package carousel turns drag gestures into spring targets for a row of
// equally wide slides and drives the spring with the animation loop.
//
// Offsets are the horizontal translation of the slide strip: slide i rests
// at offset -i·Width. All methods must be called from the UI goroutine.
package carousel

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/olivier-w/swipe/internal/anim"
	"github.com/olivier-w/swipe/internal/gesture"
	"github.com/olivier-w/swipe/internal/spring"
)

// ErrInvalidConfig is returned by New for unusable geometry.
var ErrInvalidConfig = errors.New("carousel: invalid config")

// Config holds geometry and feel.
type Config struct {
	Count int     // number of slides
	Width float64 // slide width, equal to the viewport width

	Stiffness float64
	Damping   float64
	Mass      float64

	// FlickVelocity is the release speed (units/s) above which the
	// carousel advances one slide regardless of how far it was dragged.
	FlickVelocity float64
	// Overshoot scales drag distance past the first or last slide.
	Overshoot float64
	// MinOpacity is the opacity of a slide one full width off centre.
	MinOpacity float64
}

// DefaultConfig returns the tuning the UI ships with.
func DefaultConfig(count int, width float64) Config {
	return Config{
		Count:         count,
		Width:         width,
		Stiffness:     230,
		Damping:       30,
		Mass:          1,
		FlickVelocity: 40,
		Overshoot:     0.35,
		MinOpacity:    0.35,
	}
}

// Carousel owns the spring, the gesture state and the live animation.
type Carousel struct {
	cfg    Config
	spring *spring.Spring
	sched  anim.Scheduler
	clock  spring.Clock
	logger *log.Logger

	handle   *anim.Handle
	fade     *Fade
	fadeAnim *anim.Handle

	index     int // target slide
	settled   int // last slide reported through onIndex
	dragging  bool
	dragStart float64

	onIndex  func(int)
	onOffset func(float64)
}

// Option configures a Carousel.
type Option func(*Carousel)

// WithLogger sets the logger used for gesture and settle events.
func WithLogger(l *log.Logger) Option {
	return func(c *Carousel) { c.logger = l }
}

// OnIndexChange is called when the carousel comes to rest on a different
// slide than the one it last rested on.
func OnIndexChange(fn func(int)) Option {
	return func(c *Carousel) { c.onIndex = fn }
}

// OnOffset receives every offset the carousel renders, once per frame while
// animating and once per pointer move while dragging.
func OnOffset(fn func(float64)) Option {
	return func(c *Carousel) { c.onOffset = fn }
}

// WithFade attaches a caption fade that hides while dragging and shows once
// the carousel settles.
func WithFade(f *Fade) Option {
	return func(c *Carousel) { c.fade = f }
}

// New creates a carousel resting on slide 0.
func New(cfg Config, sched anim.Scheduler, clock spring.Clock, opts ...Option) (*Carousel, error) {
	if cfg.Count < 1 {
		return nil, fmt.Errorf("%w: need at least one slide, got %d", ErrInvalidConfig, cfg.Count)
	}
	if !(cfg.Width > 0) {
		return nil, fmt.Errorf("%w: width must be positive, got %v", ErrInvalidConfig, cfg.Width)
	}
	if cfg.Mass == 0 {
		cfg.Mass = 1
	}
	s, err := spring.New(cfg.Stiffness, cfg.Damping, spring.WithMass(cfg.Mass))
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = spring.WallClock
	}

	c := &Carousel{
		cfg:    cfg,
		spring: s,
		sched:  sched,
		clock:  clock,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	s.Snap(0, clock())
	return c, nil
}

// Index returns the slide the carousel is resting on or heading to.
func (c *Carousel) Index() int { return c.index }

// Count returns the number of slides.
func (c *Carousel) Count() int { return c.cfg.Count }

// Width returns the slide width.
func (c *Carousel) Width() float64 { return c.cfg.Width }

// Dragging reports whether a pointer is down.
func (c *Carousel) Dragging() bool { return c.dragging }

// Animating reports whether a spring animation is live.
func (c *Carousel) Animating() bool { return c.handle.Running() }

// Offset samples the spring at now.
func (c *Carousel) Offset(now float64) float64 { return c.spring.X(now) }

// Spring exposes the underlying solver for status display.
func (c *Carousel) Spring() *spring.Spring { return c.spring }

// PointerDown stops any animation and pins the strip where it is.
func (c *Carousel) PointerDown(now float64) {
	c.stop()
	c.dragStart = c.spring.X(now)
	c.spring.Snap(c.dragStart, now)
	c.dragging = true
	c.hideCaption()
	c.logger.Debug("drag start", "offset", c.dragStart, "index", c.index)
}

// PointerMove follows the pointer. Dragging past either end is resisted.
func (c *Carousel) PointerMove(delta gesture.Vec, now float64) {
	if !c.dragging {
		return
	}
	off := c.rubberBand(c.dragStart + delta.X)
	c.spring.Snap(off, now)
	c.emit(off)
}

// Release picks the slide to settle on and springs towards it, carrying the
// pointer's release velocity into the motion.
func (c *Carousel) Release(rel gesture.Release, now float64) {
	if !c.dragging {
		return
	}
	c.dragging = false
	off := c.spring.X(now)
	target := c.pick(off, rel.Velocity.X)
	c.logger.Debug("drag release",
		"offset", off,
		"velocity", rel.Velocity.X,
		"from", c.index,
		"to", target,
	)
	c.animateTo(target, rel.Velocity.X, now)
}

// GoTo animates to slide i from rest velocity. Out of range indexes clamp.
func (c *Carousel) GoTo(i int, now float64) {
	c.dragging = false
	c.animateTo(c.clampIndex(i), 0, now)
}

// Next moves one slide forward.
func (c *Carousel) Next(now float64) { c.GoTo(c.index+1, now) }

// Prev moves one slide back.
func (c *Carousel) Prev(now float64) { c.GoTo(c.index-1, now) }

// Jump rests on slide i immediately, without animating or notifying.
func (c *Carousel) Jump(i int, now float64) {
	c.stop()
	c.dragging = false
	c.index = c.clampIndex(i)
	c.settled = c.index
	off := -float64(c.index) * c.cfg.Width
	c.spring.Snap(off, now)
	c.emit(off)
}

// Resize changes the slide width and jumps to the active slide at the new
// width.
func (c *Carousel) Resize(width, now float64) error {
	if !(width > 0) {
		return fmt.Errorf("%w: width must be positive, got %v", ErrInvalidConfig, width)
	}
	c.stop()
	c.dragging = false
	c.cfg.Width = width
	off := -float64(c.index) * width
	c.spring.Snap(off, now)
	c.emit(off)
	return nil
}

// Reconfigure swaps the spring constants. A running animation continues
// from its current position and velocity.
func (c *Carousel) Reconfigure(stiffness, damping, mass, now float64) error {
	if err := c.spring.Reconfigure(mass, stiffness, damping, now); err != nil {
		return err
	}
	c.cfg.Stiffness, c.cfg.Damping, c.cfg.Mass = stiffness, damping, mass
	c.logger.Debug("spring reconfigured",
		"stiffness", stiffness,
		"damping", damping,
		"mass", mass,
		"regime", c.spring.Regime(),
	)
	return nil
}

// Close cancels any live animation.
func (c *Carousel) Close() {
	c.stop()
	c.fadeAnim.Cancel()
}

func (c *Carousel) animateTo(i int, velocity, now float64) {
	c.stop()
	c.index = i
	c.spring.SetEnd(-float64(i)*c.cfg.Width, velocity, now)
	c.handle = anim.Run(c.sched, spring.Bind(c.spring, c.clock), func(m anim.Model) {
		c.emit(m.X())
	}, c.finish)
}

func (c *Carousel) finish() {
	c.logger.Debug("settled", "index", c.index)
	c.showCaption()
	if c.index == c.settled {
		return
	}
	c.settled = c.index
	if c.onIndex != nil {
		c.onIndex(c.index)
	}
}

func (c *Carousel) stop() {
	c.handle.Cancel()
	c.handle = nil
}

// pick chooses the slide to settle on for a strip at offset off released
// at velocity vx. A flick lands on the next slide past the release position
// in the flick direction; a slower release lands on the nearest slide.
func (c *Carousel) pick(off, vx float64) int {
	pos := -off / c.cfg.Width
	var i int
	switch {
	case c.cfg.FlickVelocity > 0 && vx <= -c.cfg.FlickVelocity:
		i = int(math.Floor(pos)) + 1
	case c.cfg.FlickVelocity > 0 && vx >= c.cfg.FlickVelocity:
		i = int(math.Ceil(pos)) - 1
	default:
		i = int(math.Round(pos))
	}
	return c.clampIndex(i)
}

func (c *Carousel) rubberBand(off float64) float64 {
	hi := 0.0
	lo := -float64(c.cfg.Count-1) * c.cfg.Width
	switch {
	case off > hi:
		return hi + (off-hi)*c.cfg.Overshoot
	case off < lo:
		return lo + (off-lo)*c.cfg.Overshoot
	}
	return off
}

func (c *Carousel) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > c.cfg.Count-1 {
		return c.cfg.Count - 1
	}
	return i
}

func (c *Carousel) emit(off float64) {
	if c.onOffset != nil {
		c.onOffset(off)
	}
}

func (c *Carousel) hideCaption() {
	if c.fade == nil {
		return
	}
	c.fade.Hide()
	c.runFade()
}

func (c *Carousel) showCaption() {
	if c.fade == nil {
		return
	}
	c.fade.Show()
	c.runFade()
}

func (c *Carousel) runFade() {
	c.fadeAnim.Cancel()
	f := c.fade
	c.fadeAnim = anim.Run(c.sched, f, func(anim.Model) { f.Step() }, nil)
}
