package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnknownFilter is returned by ParseFilter for names it does not recognize.
var ErrUnknownFilter = errors.New("unknown resample filter")

// DefaultFilter is the resampling filter used when shrinking images.
// Catmull-Rom is a bicubic filter.
const DefaultFilter = "catmullrom"

var filters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

// FilterNames lists the names accepted by ParseFilter in sorted order.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseFilter maps a filter name to a resampling filter. An empty name selects
// DefaultFilter.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultFilter
	}
	f, ok := filters[name]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("%w: %q (want one of %s)",
			ErrUnknownFilter, name, strings.Join(FilterNames(), ", "))
	}
	return f, nil
}

// Gray converts img to an 8-bit single-channel intensity image using ITU-R 601
// luma weights. Alpha is ignored: transparent pixels keep their stored color.
func Gray(img image.Image) *image.Gray {
	return grayFromNRGBA(imaging.Grayscale(img))
}

// Opaque returns a copy of img with every alpha value forced to 255. Color
// channels keep their un-premultiplied values: for non-premultiplied sources
// (such as PNGs with transparency) that is the stored RGB, while premultiplied
// sources have already lost the color of fully transparent pixels.
//
// Drop alpha before resizing; resampling weights color by alpha.
func Opaque(img image.Image) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.A = 0xff
		return c
	})
}

// Thumbnail shrinks img so that neither side exceeds maxSize, preserving the
// aspect ratio. Images that already fit are copied unchanged; images are never
// enlarged. The result always starts at (0,0).
func Thumbnail(img image.Image, maxSize int, filter imaging.ResampleFilter) *image.NRGBA {
	return imaging.Fit(img, maxSize, maxSize, filter)
}

// GrayThumbnail is Thumbnail for single-channel images.
func GrayThumbnail(img *image.Gray, maxSize int, filter imaging.ResampleFilter) *image.Gray {
	return grayFromNRGBA(Thumbnail(img, maxSize, filter))
}

// grayFromNRGBA keeps the red channel of an image whose channels are equal.
func grayFromNRGBA(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := y * src.Stride
		di := y * dst.Stride
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[di+x] = src.Pix[si+x*4]
		}
	}
	return dst
}
