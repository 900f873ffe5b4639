// Package config holds command-line configuration for image-to-plot.
//
// Values are resolved in order: built-in defaults, environment variables,
// then flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"

	imgutil "github.com/ironsheep/image-to-plot/internal/imaging"
	"github.com/ironsheep/image-to-plot/internal/preview"
	"github.com/ironsheep/image-to-plot/internal/sampler"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel     = "IMAGE_TO_PLOT_LOG_LEVEL"
	EnvColorMaxSize = "IMAGE_TO_PLOT_COLOR_MAX_SIZE"
)

// DefaultOut is the script written when --out is not given.
const DefaultOut = "sketch_draw.py"

// ErrUsage marks errors caused by bad flags or flag values.
var ErrUsage = errors.New("usage error")

// Config is the resolved configuration of a convert run.
type Config struct {
	Image string
	Out   string
	Mode  sampler.Mode

	// MaxSize applies to every mode when MaxSizeSet is true; otherwise it
	// is the sketch default.
	MaxSize      int
	MaxSizeSet   bool
	ColorMaxSize int

	Filter       string
	Preview      string
	PreviewScale int

	LogLevel zapcore.Level
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Out:          DefaultOut,
		Mode:         sampler.ModeSketch,
		MaxSize:      sampler.DefaultSketchSize,
		ColorMaxSize: sampler.DefaultColorSize,
		Filter:       imgutil.DefaultFilter,
		PreviewScale: preview.DefaultScale,
		LogLevel:     zapcore.InfoLevel,
	}
}

// ApplyEnv overrides c from environment variables looked up with lookup.
// Unset or empty variables are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		lvl, err := zapcore.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrUsage, EnvLogLevel, err)
		}
		c.LogLevel = lvl
	}
	if v, ok := lookup(EnvColorMaxSize); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrUsage, EnvColorMaxSize, err)
		}
		c.ColorMaxSize = n
	}
	return nil
}

// SizeFor returns the effective maximum side for mode. An explicit
// --max-size wins for every mode; otherwise color mode uses ColorMaxSize.
func (c *Config) SizeFor(mode sampler.Mode) int {
	if c.MaxSizeSet || mode != sampler.ModeColor {
		return c.MaxSize
	}
	return c.ColorMaxSize
}

// Validate checks the value ranges of c.
func (c *Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrUsage, c.Mode)
	}
	if c.MaxSize < 1 {
		return fmt.Errorf("%w: --max-size must be at least 1, got %d", ErrUsage, c.MaxSize)
	}
	if c.ColorMaxSize < 1 {
		return fmt.Errorf("%w: --color-max-size must be at least 1, got %d", ErrUsage, c.ColorMaxSize)
	}
	if _, err := imgutil.ParseFilter(c.Filter); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if c.PreviewScale < preview.MinScale || c.PreviewScale > preview.MaxScale {
		return fmt.Errorf("%w: --preview-scale must be %d-%d, got %d",
			ErrUsage, preview.MinScale, preview.MaxScale, c.PreviewScale)
	}
	if c.Out == "" {
		return fmt.Errorf("%w: --out must not be empty", ErrUsage)
	}
	return nil
}

// Parse builds a Config from defaults, the process environment and args.
// Flag usage and errors are written to output. A request for help returns
// flag.ErrHelp unwrapped.
func Parse(args []string, output io.Writer) (*Config, error) {
	cfg := Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("image-to-plot convert", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.Image, "image", "", "input image (default: newest image in the current folder)")
	fs.StringVar(&cfg.Image, "i", "", "shorthand for --image")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "generated Python script")
	fs.StringVar(&cfg.Out, "o", cfg.Out, "shorthand for --out")
	fs.IntVar(&cfg.MaxSize, "max-size", cfg.MaxSize, "maximum side of the sampled image, for every mode")
	fs.IntVar(&cfg.ColorMaxSize, "color-max-size", cfg.ColorMaxSize, "maximum side in color mode when --max-size is not given")
	fs.Func("mode", "sampling mode: sketch or color (default sketch)", func(s string) error {
		m, err := sampler.ParseMode(s)
		if err != nil {
			return err
		}
		cfg.Mode = m
		return nil
	})
	fs.StringVar(&cfg.Filter, "filter", cfg.Filter, "resample filter: "+strings.Join(imgutil.FilterNames(), ", "))
	fs.StringVar(&cfg.Preview, "preview", "", "also write a PNG preview to this path")
	fs.IntVar(&cfg.PreviewScale, "preview-scale", cfg.PreviewScale, "preview pixels per sampled pixel")
	fs.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments: %s", ErrUsage, strings.Join(fs.Args(), " "))
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "max-size" {
			cfg.MaxSizeSet = true
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IconConfig is the configuration of an icon conversion.
type IconConfig struct {
	Image   string
	Out     string
	Size    int
	FromICO bool
}

// ParseIcon parses the flags of the icon subcommand. When --out is omitted
// the output is named after the input, next to it.
func ParseIcon(args []string, output io.Writer) (*IconConfig, error) {
	cfg := IconConfig{Size: imgutil.DefaultIconSize}

	fs := flag.NewFlagSet("image-to-plot icon", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Image, "image", "", "source image, or .ico file with --from-ico")
	fs.StringVar(&cfg.Image, "i", "", "shorthand for --image")
	fs.StringVar(&cfg.Out, "out", "", "destination .png or .ico")
	fs.StringVar(&cfg.Out, "o", "", "shorthand for --out")
	fs.IntVar(&cfg.Size, "size", cfg.Size, fmt.Sprintf("icon side in pixels (%d-%d)", imgutil.MinIconSize, imgutil.MaxIconSize))
	fs.BoolVar(&cfg.FromICO, "from-ico", false, "convert an icon to PNG instead")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments: %s", ErrUsage, strings.Join(fs.Args(), " "))
	}
	if cfg.Image == "" {
		return nil, fmt.Errorf("%w: --image is required", ErrUsage)
	}
	if !cfg.FromICO && (cfg.Size < imgutil.MinIconSize || cfg.Size > imgutil.MaxIconSize) {
		return nil, fmt.Errorf("%w: --size must be %d-%d, got %d",
			ErrUsage, imgutil.MinIconSize, imgutil.MaxIconSize, cfg.Size)
	}
	if cfg.Out == "" {
		cfg.Out = filepath.Join(filepath.Dir(cfg.Image), imgutil.DefaultIconName(cfg.Image, cfg.FromICO))
	}
	return &cfg, nil
}
