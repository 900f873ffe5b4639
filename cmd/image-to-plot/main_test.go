package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeImage(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(1, 1, color.Gray{Y: 255})

	path := filepath.Join(dir, "dot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--version"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code: got %d, want %d", code, exitOK)
	}
	if !strings.HasPrefix(stdout.String(), "image-to-plot dev") {
		t.Errorf("unexpected output: %q", stdout.String())
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"help"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit code: got %d, want %d", code, exitOK)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Errorf("help missing usage: %q", stdout.String())
	}
}

func TestRun_Convert(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir)
	out := filepath.Join(dir, "dot.py")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", src, "-o", out}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code: got %d, stderr: %s", code, stderr.String())
	}

	for _, want := range []string{
		"Using image: " + src,
		"Generated sketch code with 1 points (2x2)",
		"Generated Python file: " + out,
	} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, stdout.String())
		}
	}

	script, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("script not written: %v", err)
	}
	if !strings.Contains(string(script), "POINTS = [(1, 1)]") {
		t.Errorf("unexpected script:\n%s", script)
	}
}

func TestRun_ConvertSubcommandColor(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir)
	out := filepath.Join(dir, "dot.py")
	preview := filepath.Join(dir, "dot-preview.png")

	var stdout, stderr bytes.Buffer
	code := run([]string{"convert", "--image", src, "--out", out, "--mode", "color", "--preview", preview}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code: got %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Generated color code with 4 points") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
	if _, err := os.Stat(preview); err != nil {
		t.Errorf("preview not written: %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing image", []string{"-i", filepath.Join(dir, "nope.png")}, exitError},
		{"directory as image", []string{"-i", dir}, exitError},
		{"unwritable output", []string{"-i", src, "-o", filepath.Join(dir, "missing", "x.py")}, exitError},
		{"bad mode", []string{"-i", src, "--mode", "outline"}, exitUsage},
		{"bad flag", []string{"--no-such-flag"}, exitUsage},
		{"icon without image", []string{"icon"}, exitUsage},
		{"serve with args", []string{"serve", "extra"}, exitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.want {
				t.Errorf("exit code: got %d, want %d (stderr: %s)", code, tt.want, stderr.String())
			}
		})
	}
}

func TestRun_Icon(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir)
	out := filepath.Join(dir, "dot.ico")

	var stdout, stderr bytes.Buffer
	code := run([]string{"icon", "--image", src, "--out", out, "--size", "32"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code: got %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Saved 32x32 ico: "+out) {
		t.Errorf("unexpected output: %q", stdout.String())
	}
}
