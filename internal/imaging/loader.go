package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/sergeymakinen/go-ico" // Register ICO format decoder
	_ "golang.org/x/image/bmp"          // Register BMP format decoder
	_ "golang.org/x/image/tiff"         // Register TIFF format decoder
	_ "golang.org/x/image/webp"         // Register WEBP format decoder
)

var (
	// ErrNotFound is returned when the source path does not exist or is not a
	// regular file.
	ErrNotFound = errors.New("image not found")

	// ErrDecode is returned when the source exists but its content cannot be
	// decoded as an image.
	ErrDecode = errors.New("image decode failed")
)

// SourceInfo describes a decoded source image.
type SourceInfo struct {
	// Path is the path the image was loaded from.
	Path string `json:"path"`

	// Format is the name of the decoder that accepted the file
	// ("png", "jpeg", "gif", "bmp", "tiff", "webp", "ico" or "svg").
	Format string `json:"format"`

	// Width is the source width in pixels, before any resizing.
	Width int `json:"width"`

	// Height is the source height in pixels, before any resizing.
	Height int `json:"height"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Load opens and decodes the image at path.
//
// Parameters:
//   - path: Absolute or relative path to the image file. Supported formats are
//     PNG, JPEG, GIF, BMP, TIFF, WEBP, ICO and SVG (rasterized at its viewBox size).
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the format.
//   - *SourceInfo: Metadata about the source file.
//   - error: Wraps ErrNotFound when the path is missing or names a directory,
//     ErrDecode when the content is not a decodable image.
//
// The file handle is held only for the duration of the decode and is closed on
// every return path.
func Load(path string) (image.Image, *SourceInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if !stat.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}

	var (
		img    image.Image
		format string
	)
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		img, err = loadSVG(path)
		format = "svg"
	} else {
		img, format, err = decodeFile(path)
	}
	if err != nil {
		return nil, nil, err
	}

	bounds := img.Bounds()
	return img, &SourceInfo{
		Path:          path,
		Format:        format,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		FileSizeBytes: stat.Size(),
	}, nil
}

func decodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return img, format, nil
}
