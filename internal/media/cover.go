package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/meta"
)

// Picture type for the front cover in both ID3v2 APIC and FLAC PICTURE.
const frontCover = 3

// CoverArt returns the raw bytes of the embedded picture in an .mp3 or
// .flac file, preferring the front cover.
func CoverArt(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3CoverArt(path)
	case ".flac":
		return flacCoverArt(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

func mp3CoverArt(path string) ([]byte, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Attached picture"}})
	if err != nil {
		return nil, fmt.Errorf("reading tags of %s: %w", filepath.Base(path), err)
	}
	defer tag.Close()

	var fallback []byte
	for _, f := range tag.GetFrames(tag.CommonID("Attached picture")) {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok || len(pic.Picture) == 0 {
			continue
		}
		if pic.PictureType == frontCover {
			return pic.Picture, nil
		}
		if fallback == nil {
			fallback = pic.Picture
		}
	}
	if fallback == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCoverArt, filepath.Base(path))
	}
	return fallback, nil
}

func flacCoverArt(path string) ([]byte, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata of %s: %w", filepath.Base(path), err)
	}
	defer stream.Close()

	var fallback []byte
	for _, block := range stream.Blocks {
		pic, ok := block.Body.(*meta.Picture)
		if !ok || len(pic.Data) == 0 {
			continue
		}
		if pic.Type == frontCover {
			return pic.Data, nil
		}
		if fallback == nil {
			fallback = pic.Data
		}
	}
	if fallback == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCoverArt, filepath.Base(path))
	}
	return fallback, nil
}

// Title returns the display title for a slide: the ID3 title of an .mp3 when
// present, otherwise the file name without its extension.
func Title(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Title"}})
		if err == nil {
			title := strings.TrimSpace(tag.Title())
			tag.Close()
			if title != "" {
				return title
			}
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
