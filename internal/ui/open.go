package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivier-w/swipe/internal/deck"
	"github.com/olivier-w/swipe/internal/media"
)

// ErrNoSlides is returned when a target resolves to nothing viewable.
var ErrNoSlides = errors.New("ui: no viewable slides")

// OpenDeck resolves a command line target into a deck of pending slides.
//
//   - a directory yields its supported files
//   - an .m3u/.pls list yields its viewable entries, in list order
//   - a single slide yields its directory, starting at that slide
func OpenDeck(target string) (*deck.Deck, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		paths, err := media.Scan(target)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("%w in %s (supported: %s)", ErrNoSlides, target, media.SupportedExtsList())
		}
		return deck.New(slidesFor(paths)), nil
	}

	ext := strings.ToLower(filepath.Ext(target))
	switch {
	case media.IsListExt(ext):
		entries, err := media.ParseList(target)
		if err != nil {
			return nil, err
		}
		entries = media.FilterViewable(entries)
		if len(entries) == 0 {
			return nil, fmt.Errorf("%w in %s", ErrNoSlides, filepath.Base(target))
		}
		slides := make([]deck.Slide, len(entries))
		for i, e := range entries {
			title := e.Title
			if title == "" {
				title = media.Title(e.Path)
			}
			slides[i] = deck.NewSlide(e.Path, title)
		}
		return deck.New(slides), nil

	case media.IsSupportedExt(ext):
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, err
		}
		siblings, err := media.Scan(filepath.Dir(abs))
		if err != nil || len(siblings) == 0 {
			return deck.New(slidesFor([]string{abs})), nil
		}
		d := deck.New(slidesFor(siblings))
		for i, p := range siblings {
			if p == abs {
				d.SetCurrentIndex(i)
				break
			}
		}
		return d, nil

	default:
		return nil, fmt.Errorf("%w: %s (supported: %s)", media.ErrUnsupported, ext, media.SupportedExtsList())
	}
}

func slidesFor(paths []string) []deck.Slide {
	slides := make([]deck.Slide, len(paths))
	for i, p := range paths {
		slides[i] = deck.NewSlide(p, media.Title(p))
	}
	return slides
}
