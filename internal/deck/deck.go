// Package deck holds the ordered list of slides shown by the carousel.
package deck

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/olivier-w/swipe/internal/media"
)

// SlideState represents the load state of a slide.
type SlideState int

const (
	Pending SlideState = iota
	Loading
	Ready
	Failed
)

func (s SlideState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "failed"
	}
}

// Slide is a single photo in the deck.
type Slide struct {
	ID    string
	Title string
	Path  string
	State SlideState
	Frame *media.Frame
	Err   error
}

// NewSlide creates a pending slide for path with a fresh ID.
func NewSlide(path, title string) Slide {
	return Slide{ID: uuid.NewString(), Title: title, Path: path}
}

// Deck manages the slides and the order they are shown in.
// It is only mutated from Bubbletea's single-threaded Update loop.
type Deck struct {
	slides   []Slide
	order    []int // display position -> slide index
	current  int   // display position
	shuffled bool
}

// New creates a Deck from the given slides in their natural order.
func New(slides []Slide) *Deck {
	d := &Deck{slides: slides}
	d.resetOrder()
	return d
}

// Len returns the total number of slides.
func (d *Deck) Len() int {
	return len(d.slides)
}

// Current returns the slide at the current display position, or nil if empty.
func (d *Deck) Current() *Slide {
	return d.At(d.current)
}

// CurrentIndex returns the zero-based display position.
func (d *Deck) CurrentIndex() int {
	return d.current
}

// SetCurrentIndex moves to display position i. Out of range values are ignored.
func (d *Deck) SetCurrentIndex(i int) {
	if i >= 0 && i < len(d.order) {
		d.current = i
	}
}

// At returns the slide shown at display position i, or nil if out of range.
func (d *Deck) At(i int) *Slide {
	if i < 0 || i >= len(d.order) {
		return nil
	}
	return &d.slides[d.order[i]]
}

// Slide returns the slide with natural index i, or nil if out of range.
func (d *Deck) Slide(i int) *Slide {
	if i < 0 || i >= len(d.slides) {
		return nil
	}
	return &d.slides[i]
}

// Find returns the natural index of the slide with the given ID, or -1.
func (d *Deck) Find(id string) int {
	for i := range d.slides {
		if d.slides[i].ID == id {
			return i
		}
	}
	return -1
}

// SetState sets the state of the slide with natural index i.
func (d *Deck) SetState(i int, state SlideState) {
	if s := d.Slide(i); s != nil {
		s.State = state
	}
}

// SetFrame stores a decoded frame and marks the slide ready.
func (d *Deck) SetFrame(i int, f *media.Frame) {
	if s := d.Slide(i); s != nil {
		s.Frame = f
		s.State = Ready
		s.Err = nil
	}
}

// SetError marks the slide failed.
func (d *Deck) SetError(i int, err error) {
	if s := d.Slide(i); s != nil {
		s.State = Failed
		s.Err = err
	}
}

// Ready returns how many slides have decoded.
func (d *Deck) Ready() int {
	n := 0
	for i := range d.slides {
		if d.slides[i].State == Ready {
			n++
		}
	}
	return n
}

// Prune drops failed slides, keeping the current slide where possible.
// It returns how many were removed.
func (d *Deck) Prune() int {
	var cur string
	if s := d.Current(); s != nil {
		cur = s.ID
	}
	kept := d.slides[:0]
	removed := 0
	for _, s := range d.slides {
		if s.State == Failed {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	d.slides = kept
	d.shuffled = false
	d.resetOrder()
	d.current = 0
	if i := d.Find(cur); i >= 0 {
		d.current = i
	}
	return removed
}

// IsShuffled returns whether shuffle mode is active.
func (d *Deck) IsShuffled() bool {
	return d.shuffled
}

// EnableShuffle randomizes the display order. The current slide moves to
// position 0; all other slides are permuted via Fisher-Yates.
func (d *Deck) EnableShuffle() {
	n := len(d.slides)
	if n <= 1 {
		return
	}
	cur := d.order[d.current]
	rest := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != cur {
			rest = append(rest, i)
		}
	}
	for i := len(rest) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		rest[i], rest[j] = rest[j], rest[i]
	}
	d.order = append([]int{cur}, rest...)
	d.current = 0
	d.shuffled = true
}

// DisableShuffle restores natural order, keeping the current slide.
func (d *Deck) DisableShuffle() {
	if !d.shuffled {
		return
	}
	cur := d.order[d.current]
	d.resetOrder()
	d.current = cur
	d.shuffled = false
}

// Order returns a copy of the display order as natural indexes.
func (d *Deck) Order() []int {
	out := make([]int, len(d.order))
	copy(out, d.order)
	return out
}

func (d *Deck) resetOrder() {
	d.order = make([]int, len(d.slides))
	for i := range d.order {
		d.order[i] = i
	}
}
