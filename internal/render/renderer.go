package render

import (
	"math"
	"strings"

	"github.com/olivier-w/swipe/internal/media"
)

// Layer is one slide placed in the viewport. Left is the horizontal offset
// of the slide's slot in cells; Opacity in [0, 1] dims it towards black.
type Layer struct {
	Frame   *media.Frame
	Left    float64
	Opacity float64
}

// Renderer composes slide frames into a terminal string.
// It supports two modes:
//   - Color (half-block): uses "▀" with fg/bg colors to pack 2 pixel rows per terminal row.
//   - ASCII (no color): maps each pixel to a brightness character.
type Renderer struct {
	mode   ColorMode
	sb     strings.Builder // reusable builder to reduce allocations
	canvas []byte
}

// NewRenderer creates a renderer for the given colour mode.
func NewRenderer(mode ColorMode) *Renderer {
	return &Renderer{mode: mode}
}

// Mode reports the colour mode the renderer emits.
func (r *Renderer) Mode() ColorMode { return r.mode }

// PixelBudget returns the largest frame, in pixels, that a viewW×outH cell
// viewport can show without discarding detail. Slides are decoded to fit it.
func PixelBudget(viewW, outH int) (w, h int) {
	return viewW, outH * 2
}

// Fit scales srcW×srcH to the largest size that fits boxW×boxH while
// keeping its aspect ratio. Both results are at least 1 when the inputs
// are positive.
func Fit(srcW, srcH, boxW, boxH int) (w, h int) {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return 0, 0
	}
	if srcW*boxH > srcH*boxW {
		w = boxW
		h = srcH * boxW / srcW
	} else {
		h = boxH
		w = srcW * boxH / srcH
	}
	return max(w, 1), max(h, 1)
}

// Render draws a single frame letterboxed into outW×outH cells.
func (r *Renderer) Render(frame *media.Frame, outW, outH int) string {
	return r.Strip([]Layer{{Frame: frame, Opacity: 1}}, outW, outH)
}

// Strip draws the visible slides of a carousel into a viewW×outH cell
// viewport. Each layer is letterboxed into a viewport-sized slot shifted by
// its Left offset; anything outside the viewport is clipped.
//
// In color mode, outH terminal rows represent outH*2 pixel rows (half-block packing).
// In ASCII mode, outH terminal rows represent outH pixel rows.
func (r *Renderer) Strip(layers []Layer, viewW, outH int) string {
	if viewW <= 0 || outH <= 0 {
		return ""
	}
	pixH := outH
	if r.mode != ColorOff {
		pixH = outH * 2
	}
	r.compose(layers, viewW, pixH)

	r.sb.Reset()
	// Generous pre-allocation: worst case ~20 bytes per cell (color escapes) + newlines.
	r.sb.Grow(viewW * outH * 24)

	if r.mode == ColorOff {
		r.renderASCII(viewW, outH)
	} else {
		r.renderHalfBlock(viewW, outH)
	}
	return r.sb.String()
}

// compose paints every layer onto a black RGB24 canvas of w×h pixels.
func (r *Renderer) compose(layers []Layer, w, h int) {
	n := w * h * 3
	if cap(r.canvas) < n {
		r.canvas = make([]byte, n)
	}
	r.canvas = r.canvas[:n]
	clear(r.canvas)

	for _, l := range layers {
		f := l.Frame
		if f == nil || f.W <= 0 || f.H <= 0 {
			continue
		}
		alpha := math.Max(0, math.Min(1, l.Opacity))
		if alpha == 0 {
			continue
		}

		// ASCII cells are about twice as tall as wide, so a source pixel
		// row only needs half a canvas row.
		srcH := f.H
		if r.mode == ColorOff {
			srcH = max(f.H/2, 1)
		}
		fw, fh := Fit(f.W, srcH, w, h)
		offX := (w-fw)/2 + int(math.Round(l.Left))
		offY := (h - fh) / 2

		x0, x1 := max(offX, 0), min(offX+fw, w)
		if x0 >= x1 {
			continue
		}
		for py := 0; py < fh; py++ {
			cy := offY + py
			if cy < 0 || cy >= h {
				continue
			}
			srcY := py * f.H / fh
			for cx := x0; cx < x1; cx++ {
				srcX := (cx - offX) * f.W / fw
				pr, pg, pb := f.At(srcX, srcY)
				off := (cy*w + cx) * 3
				r.canvas[off] = dim(pr, alpha)
				r.canvas[off+1] = dim(pg, alpha)
				r.canvas[off+2] = dim(pb, alpha)
			}
		}
	}
}

func dim(c uint8, alpha float64) uint8 {
	return uint8(math.Round(float64(c) * alpha))
}

func (r *Renderer) pixel(w, x, y int) (uint8, uint8, uint8) {
	off := (y*w + x) * 3
	if off+2 >= len(r.canvas) {
		return 0, 0, 0
	}
	return r.canvas[off], r.canvas[off+1], r.canvas[off+2]
}

// renderHalfBlock uses "▀" (upper half block) with fg = top pixel, bg = bottom pixel.
func (r *Renderer) renderHalfBlock(w, outH int) {
	var lastFg, lastBg string

	for row := 0; row < outH; row++ {
		for col := 0; col < w; col++ {
			tr, tg, tb := r.pixel(w, col, row*2)
			br, bg, bb := r.pixel(w, col, row*2+1)

			fg := colorSeq(r.mode, 38, tr, tg, tb)
			bgc := colorSeq(r.mode, 48, br, bg, bb)

			if fg != lastFg {
				r.sb.WriteString(fg)
				lastFg = fg
			}
			if bgc != lastBg {
				r.sb.WriteString(bgc)
				lastBg = bgc
			}
			r.sb.WriteString("▀")
		}

		r.sb.WriteString(ansiReset)
		lastFg = ""
		lastBg = ""
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}

// renderASCII maps each pixel to a brightness character.
func (r *Renderer) renderASCII(w, outH int) {
	for row := 0; row < outH; row++ {
		for col := 0; col < w; col++ {
			pr, pg, pb := r.pixel(w, col, row)
			r.sb.WriteByte(brightnessChar(luminance(pr, pg, pb)))
		}
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}
