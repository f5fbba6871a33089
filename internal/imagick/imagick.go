// Package imagick resizes and crops icons by shelling out to ImageMagick.
package imagick

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// Binaries are tried in order: ImageMagick 7 ships "magick", 6 ships "convert".
var Binaries = []string{"magick", "convert"}

// Processor runs ImageMagick at Path.
type Processor struct {
	Path string
}

// Find locates an ImageMagick binary on PATH.
func Find() (*Processor, error) {
	for _, name := range Binaries {
		if p, err := exec.LookPath(name); err == nil {
			return &Processor{Path: p}, nil
		}
	}
	return nil, fmt.Errorf("imagemagick not found on PATH (tried %v)", Binaries)
}

func geometry(width, height int) string {
	return strconv.Itoa(width) + "x" + strconv.Itoa(height)
}

// ResizeArgs fits src into width×height, keeping its aspect ratio and
// padding with transparency so the output is exactly width×height.
func ResizeArgs(src, dst string, width, height int) []string {
	g := geometry(width, height)
	return []string{
		src,
		"-resize", g,
		"-background", "none",
		"-gravity", "center",
		"-extent", g,
		"png:" + dst,
	}
}

// CropArgs scales src to cover width×height and keeps the centered
// width×height region.
func CropArgs(src, dst string, width, height int) []string {
	g := geometry(width, height)
	return []string{
		src,
		"-resize", g + "^",
		"-gravity", "center",
		"-extent", g,
		"+repage",
		"png:" + dst,
	}
}

// Resize runs ImageMagick with ResizeArgs.
func (p *Processor) Resize(ctx context.Context, src, dst string, width, height int) error {
	return p.run(ctx, "resize", ResizeArgs(src, dst, width, height))
}

// Crop runs ImageMagick with CropArgs.
func (p *Processor) Crop(ctx context.Context, src, dst string, width, height int) error {
	return p.run(ctx, "crop", CropArgs(src, dst, width, height))
}

func (p *Processor) run(ctx context.Context, op string, args []string) error {
	cmd := exec.CommandContext(ctx, p.Path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("imagemagick %s: %w\n%s", op, err, out)
	}
	return nil
}
