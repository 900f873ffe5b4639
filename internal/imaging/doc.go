// Package imaging provides the image operations the converter is built on.
//
// It wraps third-party decoders and filters behind a small set of functions:
// loading any supported file format, converting to grayscale or opaque color,
// shrinking to a maximum side, highlighting edges, locating the newest image
// in a folder, and producing square icons. All functions work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the top-left
// corner, X increases rightward, and Y increases downward.
//
// # Supported Formats
//
// Decoding is registered for PNG, JPEG, GIF (standard library), BMP, TIFF and
// WEBP (golang.org/x/image) and ICO (github.com/sergeymakinen/go-ico). SVG
// documents are rasterized with github.com/srwiley/oksvg onto a white canvas
// sized to their viewBox.
//
// # Resource Handling
//
// Load holds the source file open only while decoding and closes it on every
// return path. Nothing is cached between calls; two loads of the same path
// read the file twice.
//
// # Error Handling
//
// Errors wrap one of the package sentinels so callers can classify them with
// errors.Is:
//   - ErrNotFound: the path is missing, is a directory, or a folder search
//     found no candidates (ErrNoCandidates)
//   - ErrDecode: the file exists but is not a decodable image
//   - ErrInvalidSize: an icon size outside the accepted range
//   - ErrWrite: an output image could not be created or encoded
package imaging
