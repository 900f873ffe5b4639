package sampler

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"sketch", ModeSketch},
		{"color", ModeColor},
		{"  Color ", ModeColor},
		{"SKETCH", ModeSketch},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "colour", "edges"} {
		if _, err := ParseMode(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseMode(%q): got %v, want ErrInvalidInput", bad, err)
		}
	}

	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("round trip of %s: got %s, %v", m, got, err)
		}
	}
}

func TestDefaultMaxSize(t *testing.T) {
	if got := DefaultMaxSize(ModeSketch); got != 160 {
		t.Errorf("sketch: got %d, want 160", got)
	}
	if got := DefaultMaxSize(ModeColor); got != 80 {
		t.Errorf("color: got %d, want 80", got)
	}
}

func TestRGB(t *testing.T) {
	c := RGB{R: 255, G: 0, B: 51}

	n := c.Normalized()
	if n.R != 1 || n.G != 0 || n.B != 0.2 {
		t.Errorf("Normalized: got %+v", n)
	}
	if got := c.Hex(); got != "#ff0033" {
		t.Errorf("Hex: got %s, want #ff0033", got)
	}
}

func TestResultLen(t *testing.T) {
	sketch := &Result{Mode: ModeSketch, Points: []Point{{1, 2}, {3, 4}}}
	if got := sketch.Len(); got != 2 {
		t.Errorf("sketch Len: got %d, want 2", got)
	}
	color := &Result{Mode: ModeColor, Pixels: []Pixel{{X: 0, Y: 0}}}
	if got := color.Len(); got != 1 {
		t.Errorf("color Len: got %d, want 1", got)
	}
}

func TestAverageColor(t *testing.T) {
	pixels := []Pixel{
		{Color: RGB{R: 255, G: 0, B: 10}},
		{Color: RGB{R: 0, G: 0, B: 11}},
	}
	want := RGB{R: 128, G: 0, B: 11}
	if diff := cmp.Diff(want, AverageColor(pixels)); diff != "" {
		t.Errorf("AverageColor mismatch (-want +got):\n%s", diff)
	}
	if got := AverageColor(nil); got != (RGB{}) {
		t.Errorf("empty: got %v, want black", got)
	}
}
