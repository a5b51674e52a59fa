package deck

import (
	"errors"
	"sort"
	"testing"
)

func testSlides(titles ...string) []Slide {
	out := make([]Slide, len(titles))
	for i, title := range titles {
		out[i] = NewSlide(title+".jpg", title)
	}
	return out
}

func TestNewSlideAssignsUniqueIDs(t *testing.T) {
	a := NewSlide("a.jpg", "a")
	b := NewSlide("a.jpg", "a")
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct IDs, got %q and %q", a.ID, b.ID)
	}
	if a.State != Pending {
		t.Fatalf("expected pending, got %v", a.State)
	}
}

func TestDeckNavigation(t *testing.T) {
	d := New(testSlides("a", "b", "c"))
	if d.Len() != 3 || d.Current().Title != "a" {
		t.Fatalf("unexpected initial deck: len=%d current=%q", d.Len(), d.Current().Title)
	}
	d.SetCurrentIndex(2)
	if d.Current().Title != "c" {
		t.Fatalf("expected c, got %q", d.Current().Title)
	}
	d.SetCurrentIndex(7)
	if d.CurrentIndex() != 2 {
		t.Fatalf("expected out of range index ignored, got %d", d.CurrentIndex())
	}
	if d.At(-1) != nil || d.Slide(3) != nil {
		t.Fatal("expected nil for out of range lookups")
	}
}

func TestDeckLoadStates(t *testing.T) {
	d := New(testSlides("a", "b", "c"))
	d.SetState(0, Loading)
	d.SetFrame(1, nil)
	d.SetError(2, errors.New("bad jpeg"))

	if d.Slide(0).State != Loading {
		t.Fatalf("expected loading, got %v", d.Slide(0).State)
	}
	if d.Ready() != 1 {
		t.Fatalf("expected 1 ready slide, got %d", d.Ready())
	}
	if d.Slide(2).Err == nil || d.Slide(2).State != Failed {
		t.Fatal("expected slide 2 failed with error")
	}
}

func TestDeckPruneKeepsCurrent(t *testing.T) {
	d := New(testSlides("a", "b", "c", "d"))
	d.SetCurrentIndex(2)
	d.SetError(0, errors.New("x"))
	d.SetError(3, errors.New("y"))

	if removed := d.Prune(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 slides, got %d", d.Len())
	}
	if d.Current().Title != "c" {
		t.Fatalf("expected current slide c, got %q", d.Current().Title)
	}
}

func TestDeckShuffleKeepsCurrentFirst(t *testing.T) {
	d := New(testSlides("a", "b", "c", "d", "e"))
	d.SetCurrentIndex(3)
	d.EnableShuffle()

	if !d.IsShuffled() {
		t.Fatal("expected shuffled deck")
	}
	if d.CurrentIndex() != 0 || d.Current().Title != "d" {
		t.Fatalf("expected d at position 0, got %q at %d", d.Current().Title, d.CurrentIndex())
	}
	order := d.Order()
	sorted := append([]int(nil), order...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("shuffle order is not a permutation: %v", order)
		}
	}

	d.SetCurrentIndex(2)
	want := d.Current().Title
	d.DisableShuffle()
	if d.IsShuffled() || d.Current().Title != want {
		t.Fatalf("expected %q after unshuffle, got %q", want, d.Current().Title)
	}
}

func TestDeckShuffleSingleSlideIsNoOp(t *testing.T) {
	d := New(testSlides("a"))
	d.EnableShuffle()
	if d.IsShuffled() {
		t.Fatal("expected single slide deck to stay unshuffled")
	}
}
