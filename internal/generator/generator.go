package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Mavwarf/pushicons/internal/paths"
	"github.com/Mavwarf/pushicons/internal/sdk"
)

// ErrMissingSourceIcon is returned by CheckSource when the icon file is absent.
var ErrMissingSourceIcon = errors.New("source icon does not exist")

// Operation names carried by OpError and Result.
const (
	OpMkdir  = "mkdir"
	OpResize = "resize"
	OpCrop   = "crop"
)

// OpError is a per-icon failure. It never aborts sibling icons.
type OpError struct {
	Op   string // OpMkdir | OpResize | OpCrop
	Path string // destination path
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Processor is the image capability used to produce icons. Implementations
// must write dst as PNG regardless of its extension. Crop scales src to
// cover width×height and keeps the centered width×height region.
type Processor interface {
	Resize(ctx context.Context, src, dst string, width, height int) error
	Crop(ctx context.Context, src, dst string, width, height int) error
}

// Result is the outcome of one operation on one icon.
type Result struct {
	Icon sdk.IconSpec
	Path string
	Op   string
	Err  error // nil = created
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Report aggregates every result of a run, in catalog order.
type Report struct {
	SDK     sdk.Descriptor
	Source  string
	Results []Result
}

// Created returns the number of successful operations.
func (r Report) Created() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed operations.
func (r Report) Failed() int {
	return len(r.Results) - r.Created()
}

// Failures returns only the failed results.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// CheckSource verifies that the source icon exists and is a regular file.
func CheckSource(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrMissingSourceIcon)
	}
	return nil
}

// Generator renders every icon of a descriptor through a Processor.
type Generator struct {
	proc  Processor
	limit int
}

// New returns a Generator that runs at most limit icons at once.
// A limit <= 0 uses runtime.NumCPU().
func New(proc Processor, limit int) *Generator {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return &Generator{proc: proc, limit: limit}
}

// EffectiveSource returns the per-SDK override next to source if it
// exists, otherwise source itself.
func EffectiveSource(source, sdkID string) string {
	if override := paths.OverridePath(source, sdkID); paths.Exists(override) {
		return override
	}
	return source
}

// Generate attempts every icon in d. A failure on one icon never stops the
// others; the call returns only once every icon has settled.
func (g *Generator) Generate(ctx context.Context, d sdk.Descriptor, source string) Report {
	src := EffectiveSource(source, d.ID)

	perIcon := make([][]Result, len(d.Icons))
	var eg errgroup.Group
	eg.SetLimit(g.limit)
	for i, icon := range d.Icons {
		eg.Go(func() error {
			perIcon[i] = g.generateIcon(ctx, src, d.Destination(icon), icon)
			return nil
		})
	}
	eg.Wait()

	rep := Report{SDK: d, Source: src}
	for _, rs := range perIcon {
		rep.Results = append(rep.Results, rs...)
	}
	return rep
}

// generateIcon resizes src into dst and, for cropped specs, crops src into
// dst once the resize has succeeded.
func (g *Generator) generateIcon(ctx context.Context, src, dst string, icon sdk.IconSpec) []Result {
	if err := paths.EnsureDir(filepath.Dir(dst)); err != nil {
		return []Result{failed(icon, dst, OpMkdir, err)}
	}

	if err := g.proc.Resize(ctx, src, dst, icon.Size, icon.Size); err != nil {
		return []Result{failed(icon, dst, OpResize, err)}
	}
	results := []Result{{Icon: icon, Path: dst, Op: OpResize}}

	if !icon.Cropped() {
		return results
	}
	if err := g.proc.Crop(ctx, src, dst, icon.Size, icon.CropHeight); err != nil {
		return append(results, failed(icon, dst, OpCrop, err))
	}
	return append(results, Result{Icon: icon, Path: dst, Op: OpCrop})
}

func failed(icon sdk.IconSpec, dst, op string, err error) Result {
	return Result{Icon: icon, Path: dst, Op: op, Err: &OpError{Op: op, Path: dst, Err: err}}
}
