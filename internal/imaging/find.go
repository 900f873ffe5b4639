package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SupportedExtensions is the allow-list used when searching a folder for an
// image. Matching is case-insensitive.
var SupportedExtensions = []string{
	".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif", ".tif", ".tiff", ".svg",
}

// ErrNoCandidates is returned by FindLatest when the folder holds no file with
// a supported extension. It wraps ErrNotFound.
var ErrNoCandidates = fmt.Errorf("%w: no image files in folder", ErrNotFound)

// IsSupported reports whether path has an extension in SupportedExtensions.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindLatest returns the most recently modified supported image in dir.
//
// Only regular files directly inside dir, or symlinks to them, are
// considered. A symlink is judged by its target's modification time. When
// several files share the newest modification time, the lexically smallest
// name wins.
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read folder: %w", err)
	}

	var (
		best     string
		bestTime time.Time
	)
	// ReadDir sorts by name, so a strict After keeps the first of equal times.
	for _, entry := range entries {
		if !IsSupported(entry.Name()) {
			continue
		}
		// Stat follows symlinks, so a link to an image counts as that image.
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			// Dangling link, removed since ReadDir, or not a file.
			continue
		}
		mod := info.ModTime()
		if best == "" || mod.After(bestTime) {
			best = entry.Name()
			bestTime = mod
		}
	}

	if best == "" {
		return "", fmt.Errorf("%w: %s (supported extensions: %s)",
			ErrNoCandidates, dir, strings.Join(SupportedExtensions, ", "))
	}
	return filepath.Join(dir, best), nil
}
