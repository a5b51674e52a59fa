package carousel

import "math"

// Placement is where one slide sits in the viewport and how opaque it is.
type Placement struct {
	Index   int
	Left    float64 // viewport-relative left edge
	Opacity float64
}

// Layout returns the slides that intersect the viewport at offset off, in
// index order.
func (c *Carousel) Layout(off float64) []Placement {
	w := c.cfg.Width
	first := int(math.Floor(-off / w))
	var out []Placement
	for i := first; i <= first+1; i++ {
		if i < 0 || i >= c.cfg.Count {
			continue
		}
		left := off + float64(i)*w
		if left >= w || left+w <= 0 {
			continue
		}
		out = append(out, Placement{
			Index:   i,
			Left:    left,
			Opacity: opacity(left, w, c.cfg.MinOpacity),
		})
	}
	return out
}

// Nearest returns the slide closest to the viewport centre at offset off.
func (c *Carousel) Nearest(off float64) int {
	return c.clampIndex(int(math.Round(-off / c.cfg.Width)))
}

func opacity(left, width, floor float64) float64 {
	d := math.Min(1, math.Abs(left)/width)
	return 1 - (1-floor)*d
}
