package imagick

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func findOrSkip(t *testing.T) *Processor {
	t.Helper()
	p, err := Find()
	if err != nil {
		t.Skip("imagemagick not installed, skipping")
	}
	return p
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cfg.Width, cfg.Height
}

func TestResizeArgs(t *testing.T) {
	got := strings.Join(ResizeArgs("push.png", "res/a.png", 24, 24), " ")
	want := "push.png -resize 24x24 -background none -gravity center -extent 24x24 png:res/a.png"
	if got != want {
		t.Errorf("ResizeArgs = %q, want %q", got, want)
	}
}

func TestCropArgs(t *testing.T) {
	got := strings.Join(CropArgs("push.png", "a.png", 64, 32), " ")
	want := "push.png -resize 64x32^ -gravity center -extent 64x32 +repage png:a.png"
	if got != want {
		t.Errorf("CropArgs = %q, want %q", got, want)
	}
}

func TestFindMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := Find()
	if err == nil {
		t.Fatal("expected error with empty PATH")
	}
	if !strings.Contains(err.Error(), "imagemagick not found") {
		t.Errorf("error should mention imagemagick, got: %v", err)
	}
}

func TestResizeBadInput(t *testing.T) {
	p := findOrSkip(t)
	err := p.Resize(context.Background(), "/nonexistent/push.png", filepath.Join(t.TempDir(), "out.png"), 24, 24)
	if err == nil {
		t.Fatal("expected error for nonexistent input file")
	}
}

func TestResizeAndCrop(t *testing.T) {
	p := findOrSkip(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "push.png")
	writePNG(t, src, 100, 50)

	// Extensionless destination must still come out as PNG.
	dst := filepath.Join(dir, "ic_stat_onesignal_default")
	if err := p.Resize(context.Background(), src, dst, 72, 72); err != nil {
		t.Fatal(err)
	}
	if w, h := decodeSize(t, dst); w != 72 || h != 72 {
		t.Fatalf("resized to %dx%d, want 72x72", w, h)
	}

	if err := p.Crop(context.Background(), src, dst, 72, 30); err != nil {
		t.Fatal(err)
	}
	if w, h := decodeSize(t, dst); w != 72 || h != 30 {
		t.Fatalf("cropped to %dx%d, want 72x30", w, h)
	}
}

func TestCropTallerThanWide(t *testing.T) {
	p := findOrSkip(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "push.png")
	writePNG(t, src, 100, 100)
	dst := filepath.Join(dir, "tall.png")

	if err := p.Crop(context.Background(), src, dst, 20, 30); err != nil {
		t.Fatal(err)
	}
	if w, h := decodeSize(t, dst); w != 20 || h != 30 {
		t.Fatalf("cropped to %dx%d, want 20x30", w, h)
	}
}
