package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// loadSVG rasterizes an SVG document onto a white canvas sized to its viewBox.
func loadSVG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	w := icon.ViewBox.W
	h := icon.ViewBox.H
	width := int(math.Ceil(w))
	height := int(math.Ceil(h))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %s: svg has empty viewBox", ErrDecode, path)
	}

	icon.SetTarget(0, 0, w, h)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	icon.Draw(raster, 1.0)
	return img, nil
}
