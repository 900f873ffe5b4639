package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// FindEdges highlights local contrast in a grayscale image.
//
// Each output pixel is the 3x3 "find edges" convolution of the input:
//
//	-1 -1 -1
//	-1  8 -1
//	-1 -1 -1
//
// clamped to [0, 255]. Pixels outside the image repeat the nearest border
// pixel, so a region of uniform intensity (including the image border)
// filters to 0 everywhere.
//
// Parameters:
//   - gray: Source intensities. The bounds may start anywhere; the result
//     always starts at (0,0) and has the same size.
//
// Returns an image of the same dimensions where bright pixels mark edges.
func FindEdges(gray *image.Gray) *image.Gray {
	b := gray.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if b.Empty() {
		return out
	}

	// Radius 1 yields the 3x3 kernel above. Input channels are equal, so any
	// one output channel carries the filtered intensity.
	filtered := effect.EdgeDetection(gray, 1)
	for y := 0; y < b.Dy(); y++ {
		si := y * filtered.Stride
		di := y * out.Stride
		for x := 0; x < b.Dx(); x++ {
			out.Pix[di+x] = filtered.Pix[si+x*4]
		}
	}
	return out
}
