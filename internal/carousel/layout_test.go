package carousel

import (
	"math"
	"testing"

	"github.com/olivier-w/swipe/internal/anim"
)

func TestLayout(t *testing.T) {
	c, err := New(DefaultConfig(3, 80), anim.NewFrameQueue(), func() float64 { return 0 })
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name string
		off  float64
		want []Placement
	}{
		{
			name: "resting on first",
			off:  0,
			want: []Placement{{Index: 0, Left: 0, Opacity: 1}},
		},
		{
			name: "halfway between first and second",
			off:  -40,
			want: []Placement{
				{Index: 0, Left: -40, Opacity: 0.675},
				{Index: 1, Left: 40, Opacity: 0.675},
			},
		},
		{
			name: "overshooting the start",
			off:  12,
			want: []Placement{{Index: 0, Left: 12, Opacity: 1 - 0.65*12.0/80}},
		},
		{
			name: "overshooting the end",
			off:  -170,
			want: []Placement{{Index: 2, Left: -10, Opacity: 1 - 0.65*10.0/80}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Layout(tt.off)
			if len(got) != len(tt.want) {
				t.Fatalf("Layout(%v) = %+v, want %+v", tt.off, got, tt.want)
			}
			for i := range got {
				if got[i].Index != tt.want[i].Index ||
					math.Abs(got[i].Left-tt.want[i].Left) > 1e-9 ||
					math.Abs(got[i].Opacity-tt.want[i].Opacity) > 1e-9 {
					t.Fatalf("Layout(%v)[%d] = %+v, want %+v", tt.off, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNearestClamps(t *testing.T) {
	c, err := New(DefaultConfig(3, 80), anim.NewFrameQueue(), func() float64 { return 0 })
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := c.Nearest(50); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := c.Nearest(-130); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := c.Nearest(-1000); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestFadeSettlesOnTarget(t *testing.T) {
	f := NewFade(60)
	if !f.Done() || f.Opacity() != 1 {
		t.Fatal("expected a new fade to rest fully shown")
	}

	f.Hide()
	if f.Done() {
		t.Fatal("expected hidden target to start motion")
	}
	for i := 0; !f.Done(); i++ {
		if i > 300 {
			t.Fatal("fade never settled")
		}
		f.Step()
		if o := f.Opacity(); o < 0 || o > 1 {
			t.Fatalf("opacity out of range: %v", o)
		}
	}
	if f.X() != 0 || f.DX() != 0 {
		t.Fatalf("expected exact rest at 0, got %v/%v", f.X(), f.DX())
	}
}
