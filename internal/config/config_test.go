package config

import (
	"errors"
	"flag"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"

	"github.com/ironsheep/image-to-plot/internal/sampler"
)

// clearEnv blanks the variables ApplyEnv reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvColorMaxSize, "")
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)

	got, err := Parse(nil, io.Discard)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := Default()
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Flags(t *testing.T) {
	clearEnv(t)

	got, err := Parse([]string{
		"-i", "cat.png",
		"-o", "cat.py",
		"--mode", "COLOR",
		"--filter", "lanczos",
		"--preview", "cat-preview.png",
		"--preview-scale", "8",
		"--log-level", "debug",
	}, io.Discard)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := Default()
	want.Image = "cat.png"
	want.Out = "cat.py"
	want.Mode = sampler.ModeColor
	want.Filter = "lanczos"
	want.Preview = "cat-preview.png"
	want.PreviewScale = 8
	want.LogLevel = zapcore.DebugLevel
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSizeFor(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
		mode sampler.Mode
		want int
	}{
		{"sketch default", nil, sampler.ModeSketch, 160},
		{"color default", nil, sampler.ModeColor, 80},
		{"explicit 160 in color", []string{"--max-size", "160"}, sampler.ModeColor, 160},
		{"explicit size in sketch", []string{"--max-size", "64"}, sampler.ModeSketch, 64},
		{"color max size", []string{"--color-max-size", "40"}, sampler.ModeColor, 40},
		{"color max size ignored for sketch", []string{"--color-max-size", "40"}, sampler.ModeSketch, 160},
		{"explicit wins over color max", []string{"--color-max-size", "40", "--max-size", "100"}, sampler.ModeColor, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := cfg.SizeFor(tt.mode); got != tt.want {
				t.Errorf("SizeFor(%s): got %d, want %d", tt.mode, got, tt.want)
			}
		})
	}
}

func TestParse_Env(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvColorMaxSize, "48")

	cfg, err := Parse(nil, io.Discard)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.LogLevel != zapcore.WarnLevel {
		t.Errorf("LogLevel: got %s, want warn", cfg.LogLevel)
	}
	if got := cfg.SizeFor(sampler.ModeColor); got != 48 {
		t.Errorf("color size: got %d, want 48", got)
	}

	// Flags override the environment.
	cfg, err = Parse([]string{"--color-max-size", "30"}, io.Discard)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := cfg.SizeFor(sampler.ModeColor); got != 30 {
		t.Errorf("color size: got %d, want 30", got)
	}
}

func TestParse_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvColorMaxSize, "lots")
	if _, err := Parse(nil, io.Discard); !errors.Is(err, ErrUsage) {
		t.Errorf("got %v, want ErrUsage", err)
	}

	clearEnv(t)
	t.Setenv(EnvLogLevel, "chatty")
	if _, err := Parse(nil, io.Discard); !errors.Is(err, ErrUsage) {
		t.Errorf("got %v, want ErrUsage", err)
	}
}

func TestParse_UsageErrors(t *testing.T) {
	clearEnv(t)

	tests := [][]string{
		{"--mode", "outline"},
		{"--max-size", "0"},
		{"--max-size", "big"},
		{"--color-max-size", "-1"},
		{"--filter", "sinc"},
		{"--preview-scale", "17"},
		{"--out", ""},
		{"--unknown"},
		{"extra-arg"},
	}
	for _, args := range tests {
		if _, err := Parse(args, io.Discard); !errors.Is(err, ErrUsage) {
			t.Errorf("Parse(%v): got %v, want ErrUsage", args, err)
		}
	}
}

func TestParse_Help(t *testing.T) {
	clearEnv(t)
	if _, err := Parse([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("got %v, want flag.ErrHelp", err)
	}
}

func TestParseIcon(t *testing.T) {
	got, err := ParseIcon([]string{"--image", "art/logo.png", "--size", "64"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseIcon failed: %v", err)
	}
	want := &IconConfig{Image: "art/logo.png", Out: filepath.Join("art", "logo-icon.png"), Size: 64}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	got, err = ParseIcon([]string{"-i", "app.ico", "--from-ico", "-o", "app.png"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseIcon failed: %v", err)
	}
	if !got.FromICO || got.Out != "app.png" {
		t.Errorf("unexpected config: %+v", got)
	}
}

func TestParseIcon_Errors(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"--image", "a.png", "--size", "8"},
		{"--image", "a.png", "--size", "1024"},
		{"--image", "a.png", "stray"},
	} {
		if _, err := ParseIcon(args, io.Discard); !errors.Is(err, ErrUsage) {
			t.Errorf("ParseIcon(%v): got %v, want ErrUsage", args, err)
		}
	}
}
