package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"
)

// Icon size bounds accepted by SquareIcon and WriteIcon.
const (
	MinIconSize     = 16
	MaxIconSize     = 512
	DefaultIconSize = 256

	maxICOSize = 256
)

// ErrInvalidSize is returned for icon sizes outside [MinIconSize, MaxIconSize].
var ErrInvalidSize = errors.New("invalid icon size")

// ErrWrite is returned when an output image cannot be created or encoded.
var ErrWrite = errors.New("image write failed")

// IconResult describes a written icon or converted image.
type IconResult struct {
	OutPath string `json:"out_path"`
	Format  string `json:"format"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// SquareIcon shrinks img to fit a size x size square, preserving aspect ratio,
// and centres it on a transparent canvas of exactly that size.
func SquareIcon(img image.Image, size int) (*image.NRGBA, error) {
	if size < MinIconSize || size > MaxIconSize {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidSize, size, MinIconSize, MaxIconSize)
	}
	fitted := imaging.Fit(img, size, size, imaging.Lanczos)
	canvas := imaging.New(size, size, color.NRGBA{})
	return imaging.PasteCenter(canvas, fitted), nil
}

// WriteIcon converts the image at src into a square icon and writes it to dst.
// The output is ICO when dst ends in ".ico" and PNG otherwise.
func WriteIcon(src, dst string, size int) (*IconResult, error) {
	img, _, err := Load(src)
	if err != nil {
		return nil, err
	}
	icon, err := SquareIcon(img, size)
	if err != nil {
		return nil, err
	}

	format := "png"
	if strings.EqualFold(filepath.Ext(dst), ".ico") {
		format = "ico"
		if size > maxICOSize {
			return nil, fmt.Errorf("%w: %d (ICO entries are at most %d)", ErrInvalidSize, size, maxICOSize)
		}
	}
	if err := writeImage(dst, icon, format); err != nil {
		return nil, err
	}
	return &IconResult{OutPath: dst, Format: format, Width: size, Height: size}, nil
}

// IconToPNG decodes src (any supported format, typically ICO) and writes it to
// dst as PNG at its native size. For ICO files the largest stored icon is used.
func IconToPNG(src, dst string) (*IconResult, error) {
	img, _, err := Load(src)
	if err != nil {
		return nil, err
	}
	if err := writeImage(dst, img, "png"); err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &IconResult{OutPath: dst, Format: "png", Width: b.Dx(), Height: b.Dy()}, nil
}

func writeImage(path string, img image.Image, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrWrite, cerr)
		}
	}()

	switch format {
	case "ico":
		err = ico.Encode(f, img)
	default:
		err = imaging.Encode(f, img, imaging.PNG)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %v", ErrWrite, format, err)
	}
	return nil
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	return writeImage(path, img, "png")
}

// DefaultIconName returns the output file name suggested for converting src:
// "<stem>-icon.png" for image to icon, "<stem>-from-icon.png" for icon to PNG.
func DefaultIconName(src string, fromICO bool) string {
	stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if fromICO {
		return stem + "-from-icon.png"
	}
	return stem + "-icon.png"
}
