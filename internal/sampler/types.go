package sampler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidInput is returned for out-of-domain sizes, modes or points.
var ErrInvalidInput = errors.New("invalid input")

// Mode selects how an image is sampled.
type Mode string

const (
	ModeSketch Mode = "sketch"
	ModeColor  Mode = "color"
)

// Modes lists the supported modes.
func Modes() []Mode {
	return []Mode{ModeSketch, ModeColor}
}

// ParseMode maps a mode name to a Mode. Matching is case-insensitive and
// ignores surrounding space.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSketch:
		return ModeSketch, nil
	case ModeColor:
		return ModeColor, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q (want sketch or color)", ErrInvalidInput, s)
}

func (m Mode) String() string { return string(m) }

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	return m == ModeSketch || m == ModeColor
}

// Point is an edge pixel in sketch mode.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RGB is an 8-bit opaque color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Normalized maps each channel into [0, 1] by dividing by 255.
func (c RGB) Normalized() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return c.Normalized().Hex()
}

// Pixel is one sampled pixel in color mode.
type Pixel struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Color RGB `json:"color"`
}

// Result is the outcome of sampling one image. Only the slice matching Mode
// is populated.
type Result struct {
	Mode   Mode    `json:"mode"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Points []Point `json:"points,omitempty"`
	Pixels []Pixel `json:"pixels,omitempty"`
}

// Len returns the number of sampled entries for the result's mode.
func (r *Result) Len() int {
	if r.Mode == ModeColor {
		return len(r.Pixels)
	}
	return len(r.Points)
}

// AverageColor returns the mean color of pixels, rounded to the nearest
// integer per channel. An empty slice yields black.
func AverageColor(pixels []Pixel) RGB {
	if len(pixels) == 0 {
		return RGB{}
	}
	var r, g, b int
	for _, p := range pixels {
		r += int(p.Color.R)
		g += int(p.Color.G)
		b += int(p.Color.B)
	}
	n := len(pixels)
	return RGB{
		R: uint8((r + n/2) / n),
		G: uint8((g + n/2) / n),
		B: uint8((b + n/2) / n),
	}
}
