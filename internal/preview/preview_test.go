package preview

import (
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	imgutil "github.com/ironsheep/image-to-plot/internal/imaging"
	"github.com/ironsheep/image-to-plot/internal/sampler"
)

func TestRender_Sketch(t *testing.T) {
	res := &sampler.Result{
		Mode:   sampler.ModeSketch,
		Width:  3,
		Height: 2,
		Points: []sampler.Point{{X: 2, Y: 1}},
	}

	img, err := Render(res, 4)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Fatalf("dimensions: got %dx%d, want 12x8", b.Dx(), b.Dy())
	}

	black := color.NRGBA{0, 0, 0, 255}
	white := color.NRGBA{255, 255, 255, 255}
	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{8, 4, black},
		{11, 7, black},
		{7, 4, white},
		{8, 3, white},
		{0, 0, white},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRender_Color(t *testing.T) {
	res := &sampler.Result{
		Mode:   sampler.ModeColor,
		Width:  2,
		Height: 1,
		Pixels: []sampler.Pixel{
			{X: 0, Y: 0, Color: sampler.RGB{R: 255}},
			{X: 1, Y: 0, Color: sampler.RGB{R: 10, G: 20, B: 30}},
		},
	}

	img, err := Render(res, 1)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got, want := img.NRGBAAt(0, 0), (color.NRGBA{255, 0, 0, 255}); got != want {
		t.Errorf("pixel 0: got %v, want %v", got, want)
	}
	if got, want := img.NRGBAAt(1, 0), (color.NRGBA{10, 20, 30, 255}); got != want {
		t.Errorf("pixel 1: got %v, want %v", got, want)
	}
}

func TestRender_InvalidInput(t *testing.T) {
	ok := &sampler.Result{Mode: sampler.ModeSketch, Width: 1, Height: 1}

	for _, scale := range []int{0, MaxScale + 1} {
		if _, err := Render(ok, scale); !errors.Is(err, sampler.ErrInvalidInput) {
			t.Errorf("scale %d: got %v, want ErrInvalidInput", scale, err)
		}
	}
	if _, err := Render(nil, 2); !errors.Is(err, sampler.ErrInvalidInput) {
		t.Errorf("nil result: got %v, want ErrInvalidInput", err)
	}
	if _, err := Render(&sampler.Result{Mode: sampler.ModeColor}, 2); !errors.Is(err, sampler.ErrInvalidInput) {
		t.Errorf("empty result: got %v, want ErrInvalidInput", err)
	}
}

func TestSave(t *testing.T) {
	img, err := Render(&sampler.Result{Mode: sampler.ModeSketch, Width: 5, Height: 5}, 2)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "preview.png")
	if err := Save(path, img); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	_, info, err := imgutil.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if info.Width != 10 || info.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 10x10", info.Width, info.Height)
	}

	bad := filepath.Join(t.TempDir(), "no-such-dir", "preview.png")
	if err := Save(bad, img); !errors.Is(err, imgutil.ErrWrite) {
		t.Errorf("got %v, want ErrWrite", err)
	}
}
