// Package raster resizes and crops icons in pure Go. It is the fallback
// when ImageMagick is not installed.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/Mavwarf/pushicons/internal/paths"
)

// Processor implements resize and crop with golang.org/x/image/draw.
type Processor struct{}

// Resize fits src into width×height, keeping its aspect ratio, centered on
// a transparent canvas of exactly width×height.
func (Processor) Resize(ctx context.Context, src, dst string, width, height int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := decode(src)
	if err != nil {
		return err
	}
	return encode(dst, Fit(img, width, height))
}

// Crop scales src to cover width×height and keeps the centered region.
func (Processor) Crop(ctx context.Context, src, dst string, width, height int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := decode(src)
	if err != nil {
		return err
	}
	return encode(dst, Fill(img, width, height))
}

// Fit scales img to fit inside width×height and centers it.
func Fit(img image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	b := img.Bounds()
	if b.Empty() {
		return dst
	}

	w, h := width, height
	// Compare aspect ratios without floats: b.Dx()/b.Dy() vs width/height.
	if b.Dx()*height > b.Dy()*width {
		h = max(1, b.Dy()*width/b.Dx())
	} else {
		w = max(1, b.Dx()*height/b.Dy())
	}
	x0 := (width - w) / 2
	y0 := (height - h) / 2
	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), img, b, draw.Over, nil)
	return dst
}

// Fill scales img so it covers width×height, keeping its aspect ratio,
// and crops the overflow evenly from both sides.
func Fill(img image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	b := img.Bounds()
	if b.Empty() {
		return dst
	}

	w, h := width, height
	if b.Dx()*height > b.Dy()*width {
		w = max(width, b.Dx()*height/b.Dy())
	} else {
		h = max(height, b.Dy()*width/b.Dx())
	}
	x0 := (width - w) / 2
	y0 := (height - h) / 2
	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), img, b, draw.Src, nil)
	return dst
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// encode writes img as PNG. The write is atomic so a crop reading and
// writing the same path never sees a truncated file.
func encode(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return paths.AtomicWrite(path, buf.Bytes())
}
