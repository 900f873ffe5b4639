// Package sampler turns an image file into the drawable points of a plot.
//
// Two modes are supported:
//
//   - Sketch: the image is reduced to grayscale, shrunk to fit the requested
//     maximum side, passed through a 3x3 edge filter and binarized against the
//     mean filtered intensity. Every pixel strictly brighter than the mean
//     becomes a Point.
//   - Color: the image is shrunk the same way and every pixel becomes a Pixel
//     carrying its RGB color.
//
// Points are always reported in row-major order with the origin at the top
// left of the resized image. A Result records the resized dimensions, never
// the source dimensions.
//
// Sampling holds no state between calls; each call opens, decodes and closes
// the source image on its own.
package sampler
