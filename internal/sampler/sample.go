package sampler

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	imgutil "github.com/ironsheep/image-to-plot/internal/imaging"
)

// Mode default sizes applied when the caller gives no explicit maximum side.
const (
	DefaultSketchSize = 160
	DefaultColorSize  = 80
)

// DefaultMaxSize returns the default maximum side for mode.
func DefaultMaxSize(mode Mode) int {
	if mode == ModeColor {
		return DefaultColorSize
	}
	return DefaultSketchSize
}

type options struct {
	filter imaging.ResampleFilter
}

// Option customizes sampling.
type Option func(*options)

// WithFilter sets the resampling filter used when shrinking the image.
func WithFilter(f imaging.ResampleFilter) Option {
	return func(o *options) {
		o.filter = f
	}
}

func buildOptions(opts []Option) options {
	o := options{filter: imaging.CatmullRom}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Sample samples the image at path in the given mode.
//
// Parameters:
//   - mode: ModeSketch or ModeColor
//   - path: image file to read
//   - maxSize: upper bound on the longer side of the resized image (>= 1)
//
// Returns ErrInvalidInput for an unknown mode or a maxSize below 1 before the
// file is touched.
func Sample(mode Mode, path string, maxSize int, opts ...Option) (*Result, error) {
	switch mode {
	case ModeSketch:
		return SampleSketch(path, maxSize, opts...)
	case ModeColor:
		return SampleColor(path, maxSize, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, mode)
	}
}

// SampleSketch extracts edge points from the image at path.
//
// The image is converted to grayscale, shrunk to fit maxSize x maxSize
// without enlarging, and edge filtered. A pixel is an edge point iff its
// filtered intensity is strictly greater than the mean filtered intensity.
// A uniform image therefore yields an empty, non-nil Points slice.
func SampleSketch(path string, maxSize int, opts ...Option) (*Result, error) {
	if err := checkSize(maxSize); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	img, _, err := imgutil.Load(path)
	if err != nil {
		return nil, err
	}

	gray := imgutil.GrayThumbnail(imgutil.Gray(img), maxSize, o.filter)
	edges := imgutil.FindEdges(gray)

	b := edges.Bounds()
	return &Result{
		Mode:   ModeSketch,
		Width:  b.Dx(),
		Height: b.Dy(),
		Points: threshold(edges),
	}, nil
}

// SampleColor returns one Pixel per pixel of the image at path after it has
// been shrunk to fit maxSize x maxSize. Alpha is dropped before shrinking, so
// a pixel's color does not depend on whether the image was resized.
func SampleColor(path string, maxSize int, opts ...Option) (*Result, error) {
	if err := checkSize(maxSize); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	img, _, err := imgutil.Load(path)
	if err != nil {
		return nil, err
	}

	thumb := imgutil.Thumbnail(imgutil.Opaque(img), maxSize, o.filter)

	b := thumb.Bounds()
	return &Result{
		Mode:   ModeColor,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: pixels(thumb),
	}, nil
}

func checkSize(maxSize int) error {
	if maxSize < 1 {
		return fmt.Errorf("%w: max size must be at least 1, got %d", ErrInvalidInput, maxSize)
	}
	return nil
}

// MeanIntensity returns the arithmetic mean of all intensities in img.
func MeanIntensity(img *image.Gray) float64 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}
	var sum int64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += int64(img.GrayAt(x, y).Y)
		}
	}
	return float64(sum) / float64(n)
}

// threshold keeps the pixels brighter than the image mean, row-major.
func threshold(edges *image.Gray) []Point {
	mean := MeanIntensity(edges)
	b := edges.Bounds()

	points := make([]Point, 0)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if float64(edges.GrayAt(b.Min.X+x, b.Min.Y+y).Y) > mean {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

func pixels(img *image.NRGBA) []Pixel {
	b := img.Bounds()
	out := make([]Pixel, 0, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := img.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			out = append(out, Pixel{X: x, Y: y, Color: RGB{R: c.R, G: c.G, B: c.B}})
		}
	}
	return out
}
