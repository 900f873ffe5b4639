// Package preview rasterizes a sampling result into an image that
// approximates what the generated script draws.
package preview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	imgutil "github.com/ironsheep/image-to-plot/internal/imaging"
	"github.com/ironsheep/image-to-plot/internal/sampler"
)

// Cell scale bounds, in output pixels per sampled pixel.
const (
	MinScale     = 1
	MaxScale     = 16
	DefaultScale = 4
)

// Render draws result onto a white canvas of (Width*scale) x (Height*scale).
// Sketch points become black cells; color pixels become cells of their color.
//
// Returns sampler.ErrInvalidInput for a scale outside [MinScale, MaxScale] or
// a result with non-positive dimensions.
func Render(result *sampler.Result, scale int) (*image.NRGBA, error) {
	if scale < MinScale || scale > MaxScale {
		return nil, fmt.Errorf("%w: preview scale %d (want %d-%d)", sampler.ErrInvalidInput, scale, MinScale, MaxScale)
	}
	if result == nil || result.Width < 1 || result.Height < 1 {
		return nil, fmt.Errorf("%w: nothing to preview", sampler.ErrInvalidInput)
	}

	canvas := imaging.New(result.Width*scale, result.Height*scale, color.White)

	switch result.Mode {
	case sampler.ModeSketch:
		black := image.NewUniform(color.Black)
		for _, p := range result.Points {
			fill(canvas, p.X, p.Y, scale, black)
		}
	case sampler.ModeColor:
		for _, p := range result.Pixels {
			fill(canvas, p.X, p.Y, scale, image.NewUniform(p.Color.Normalized()))
		}
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", sampler.ErrInvalidInput, result.Mode)
	}
	return canvas, nil
}

// fill paints the scale x scale cell for sampled pixel (x, y).
func fill(dst draw.Image, x, y, scale int, src image.Image) {
	r := image.Rect(x*scale, y*scale, (x+1)*scale, (y+1)*scale)
	draw.Draw(dst, r, src, image.Point{}, draw.Src)
}

// Save writes a rendered preview to path as PNG. Failures wrap
// imaging.ErrWrite.
func Save(path string, img image.Image) error {
	return imgutil.SavePNG(path, img)
}
