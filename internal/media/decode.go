package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // registers webp with image.Decode
)

var (
	ErrUnsupported = errors.New("media: unsupported format")
	ErrNoCoverArt  = errors.New("media: no embedded cover art")
)

// Frame is a decoded slide as packed RGB24, row-major, top to bottom.
type Frame struct {
	W, H int
	Pix  []byte
}

// At returns the RGB triplet at (x, y). Out of range reads are black.
func (f *Frame) At(x, y int) (uint8, uint8, uint8) {
	if f == nil || x < 0 || y < 0 || x >= f.W || y >= f.H {
		return 0, 0, 0
	}
	off := (y*f.W + x) * 3
	return f.Pix[off], f.Pix[off+1], f.Pix[off+2]
}

// Decode loads path as a slide and fits it within maxW×maxH pixels,
// preserving aspect ratio. Images honour EXIF orientation; .mp3 and .flac
// files contribute their embedded front cover.
func Decode(path string, maxW, maxH int) (*Frame, error) {
	img, err := decodeImage(path)
	if err != nil {
		return nil, err
	}
	return FrameFromImage(img, maxW, maxH), nil
}

// FrameFromImage fits img within maxW×maxH and flattens it onto black.
func FrameFromImage(img image.Image, maxW, maxH int) *Frame {
	b := img.Bounds()
	if maxW > 0 && maxH > 0 && (b.Dx() > maxW || b.Dy() > maxH) {
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}
	nrgba := imaging.Clone(img)

	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	f := &Frame{W: w, H: h, Pix: make([]byte, w*h*3)}
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w; x++ {
			r, g, bl, a := row[x*4], row[x*4+1], row[x*4+2], row[x*4+3]
			off := (y*w + x) * 3
			f.Pix[off] = premultiply(r, a)
			f.Pix[off+1] = premultiply(g, a)
			f.Pix[off+2] = premultiply(bl, a)
		}
	}
	return f
}

func premultiply(c, a uint8) uint8 {
	return uint8(uint16(c) * uint16(a) / 255)
}

func decodeImage(path string) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case IsImageExt(ext):
		img, err := imaging.Open(path, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
		}
		return img, nil
	case IsCoverArtExt(ext):
		data, err := CoverArt(path)
		if err != nil {
			return nil, err
		}
		img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("decoding cover art of %s: %w", filepath.Base(path), err)
		}
		return img, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}
