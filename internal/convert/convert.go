// Package convert runs the full image-to-script pipeline: sample an image,
// emit the plotting script and optionally write it and a PNG preview to disk.
//
// Both the command-line tool and the tool server go through Run so that they
// share one set of defaults and error values.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ironsheep/image-to-plot/internal/emitter"
	imgutil "github.com/ironsheep/image-to-plot/internal/imaging"
	"github.com/ironsheep/image-to-plot/internal/preview"
	"github.com/ironsheep/image-to-plot/internal/sampler"
)

// ErrWrite is returned when a script or preview cannot be written. It is the
// same value as imaging.ErrWrite.
var ErrWrite = imgutil.ErrWrite

// DefaultOutName is the script name used by the command line when no output
// is given.
const DefaultOutName = "sketch_draw.py"

// Request describes one conversion.
type Request struct {
	Mode      sampler.Mode
	ImagePath string
	// MaxSize of 0 selects the mode default.
	MaxSize int
	// Filter names the resampling filter; empty selects the default.
	Filter string
	// Out is the script destination. Empty skips writing.
	Out string
	// PreviewPath is the PNG preview destination. Empty skips the preview.
	PreviewPath string
	// PreviewScale of 0 selects preview.DefaultScale.
	PreviewScale int
}

// Outcome is the result of a successful Run.
type Outcome struct {
	Result      *sampler.Result
	Script      string
	OutPath     string
	PreviewPath string
}

// Run samples req.ImagePath, emits the script and writes the requested files.
//
// Parameters:
//   - log: receives debug progress; nil disables logging
//   - req: conversion parameters
//
// Returns:
//   - *Outcome: sampled result, generated script and written paths
//   - error: sampler.ErrInvalidInput, imaging.ErrNotFound, imaging.ErrDecode
//     or ErrWrite, wrapped with context. No outcome is returned on error.
func Run(log *zap.Logger, req Request) (*Outcome, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if !req.Mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", sampler.ErrInvalidInput, req.Mode)
	}
	maxSize := req.MaxSize
	if maxSize == 0 {
		maxSize = sampler.DefaultMaxSize(req.Mode)
	}
	filter, err := imgutil.ParseFilter(req.Filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sampler.ErrInvalidInput, err)
	}
	scale := req.PreviewScale
	if scale == 0 {
		scale = preview.DefaultScale
	}

	log.Debug("sampling image",
		zap.String("path", req.ImagePath),
		zap.Stringer("mode", req.Mode),
		zap.Int("max_size", maxSize))

	result, err := sampler.Sample(req.Mode, req.ImagePath, maxSize, sampler.WithFilter(filter))
	if err != nil {
		return nil, err
	}

	script, err := emitter.Emit(result)
	if err != nil {
		return nil, err
	}

	log.Debug("generated script",
		zap.Int("width", result.Width),
		zap.Int("height", result.Height),
		zap.Int("points", result.Len()),
		zap.Int("bytes", len(script)))

	out := &Outcome{Result: result, Script: script}

	if req.Out != "" {
		if err := WriteScript(req.Out, script); err != nil {
			return nil, err
		}
		out.OutPath = req.Out
	}

	if req.PreviewPath != "" {
		img, err := preview.Render(result, scale)
		if err != nil {
			return nil, err
		}
		if err := preview.Save(req.PreviewPath, img); err != nil {
			return nil, err
		}
		out.PreviewPath = req.PreviewPath
		log.Debug("wrote preview", zap.String("path", req.PreviewPath))
	}

	return out, nil
}

// WriteScript writes text to path with mode 0644. Any failure wraps ErrWrite.
func WriteScript(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// DefaultScriptName returns "<stem>.py" for imagePath, or "image_code.py"
// when the path has no usable stem.
func DefaultScriptName(imagePath string) string {
	base := filepath.Base(imagePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "image_code.py"
	}
	return stem + ".py"
}
