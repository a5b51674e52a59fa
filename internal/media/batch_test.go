package media

import (
	"context"
	"errors"
	"image/color"
	"path/filepath"
	"sync"
	"testing"
)

func TestDecodeAllReportsEveryPath(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	bad := filepath.Join(dir, "bad.png")
	other := filepath.Join(dir, "other.png")
	writeFile(t, good, encodePNG(t, 6, 4, color.NRGBA{G: 255, A: 255}))
	writeFile(t, bad, []byte("garbage"))
	writeFile(t, other, encodePNG(t, 2, 2, color.NRGBA{R: 255, A: 255}))

	var mu sync.Mutex
	got := map[int]Decoded{}
	err := DecodeAll(context.Background(), []string{good, bad, other}, 10, 10, 2, func(d Decoded) {
		mu.Lock()
		defer mu.Unlock()
		got[d.Index] = d
	})
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(got))
	}
	if got[0].Err != nil || got[0].Frame == nil || got[0].Frame.W != 6 {
		t.Fatalf("unexpected result for good.png: %+v", got[0])
	}
	if got[1].Err == nil || got[1].Frame != nil {
		t.Fatalf("expected bad.png to fail, got %+v", got[1])
	}
	if got[2].Path != other || got[2].Err != nil {
		t.Fatalf("unexpected result for other.png: %+v", got[2])
	}
}

func TestDecodeAllCancelled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writeFile(t, path, encodePNG(t, 2, 2, color.NRGBA{A: 255}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := DecodeAll(ctx, []string{path, path, path}, 10, 10, 1, func(Decoded) { calls++ })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no reports after cancellation, got %d", calls)
	}
}
