// Package emitter renders sampled points into standalone matplotlib scripts.
//
// Emitting is pure text formatting: the same input always yields the same
// bytes, and nothing is read from or written to disk.
package emitter

import (
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/ironsheep/image-to-plot/internal/sampler"
)

//go:embed templates/*.py.tmpl
var templateFS embed.FS

var (
	sketchTemplate = template.Must(template.ParseFS(templateFS, "templates/sketch.py.tmpl"))
	colorTemplate  = template.Must(template.ParseFS(templateFS, "templates/color.py.tmpl"))
)

// ErrInvalidInput is the sampler's sentinel, shared so callers test one value.
var ErrInvalidInput = sampler.ErrInvalidInput

type scriptData struct {
	Width  int
	Height int
	Points string
}

// Emit renders the script for result's mode.
func Emit(result *sampler.Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("%w: nil result", ErrInvalidInput)
	}
	switch result.Mode {
	case sampler.ModeSketch:
		return EmitSketch(result.Width, result.Height, result.Points)
	case sampler.ModeColor:
		return EmitColor(result.Width, result.Height, result.Pixels)
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, result.Mode)
	}
}

// EmitSketch renders a script that plots each point as a small black dot at
// (x, HEIGHT - y).
//
// Parameters:
//   - width, height: dimensions of the sampled image (>= 1)
//   - points: edge points inside [0,width) x [0,height); may be empty
//
// Returns ErrInvalidInput when a dimension or point is out of range.
func EmitSketch(width, height int, points []sampler.Point) (string, error) {
	if err := checkDims(width, height); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i, p := range points {
		if err := checkPoint(p.X, p.Y, width, height); err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		writeTuple(&sb, p.X, p.Y)
	}
	sb.WriteByte(']')

	return render(sketchTemplate, scriptData{Width: width, Height: height, Points: sb.String()})
}

// EmitColor renders a script that plots each pixel as a colored square cell.
// Colors are embedded as 0-255 triples and normalized by the script.
func EmitColor(width, height int, pixels []sampler.Pixel) (string, error) {
	if err := checkDims(width, height); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i, p := range pixels {
		if err := checkPoint(p.X, p.Y, width, height); err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		sb.WriteString(strconv.Itoa(p.X))
		sb.WriteString(", ")
		sb.WriteString(strconv.Itoa(p.Y))
		sb.WriteString(", ")
		writeTuple(&sb, int(p.Color.R), int(p.Color.G), int(p.Color.B))
		sb.WriteByte(')')
	}
	sb.WriteByte(']')

	return render(colorTemplate, scriptData{Width: width, Height: height, Points: sb.String()})
}

func render(tmpl *template.Template, data scriptData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render script: %w", err)
	}
	return sb.String(), nil
}

// writeTuple writes a Python tuple literal such as "(1, 2)".
func writeTuple(sb *strings.Builder, vals ...int) {
	sb.WriteByte('(')
	for i, v := range vals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(')')
}

func checkDims(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidInput, width, height)
	}
	return nil
}

func checkPoint(x, y, width, height int) error {
	if x < 0 || x >= width || y < 0 || y >= height {
		return fmt.Errorf("%w: point (%d, %d) outside %dx%d image", ErrInvalidInput, x, y, width, height)
	}
	return nil
}
