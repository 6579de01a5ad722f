// ABOUTME: Writes the active drawing to PNG, PDF or HTML files chosen by extension
// ABOUTME: All renders several outputs concurrently with an errgroup

package export

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/circles-go/internal/point"
	"github.com/mauromedda/circles-go/internal/render"
)

// Format is an output file type.
type Format string

const (
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

// Options control the rendered drawing.
type Options struct {
	Layout     render.Layout
	Color      color.Color
	Background color.Color
}

// DefaultOptions draws red circles on white at the default layout.
func DefaultOptions() Options {
	return Options{
		Layout:     render.DefaultLayout(),
		Color:      color.RGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff},
		Background: color.White,
	}
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".pdf":
		return FormatPDF, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want .png, .pdf or .html)", ext)
	}
}

// Write renders pts in format f to w.
func Write(w io.Writer, f Format, pts []point.Point, opts Options) error {
	switch f {
	case FormatPNG:
		return PNG(w, pts, opts)
	case FormatPDF:
		return PDF(w, pts, opts)
	case FormatHTML:
		return HTML(w, pts, opts)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// WriteFile renders pts into path, choosing the format from its extension.
// A failed render removes the partial file.
func WriteFile(path string, pts []point.Point, opts Options) (err error) {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := Write(out, f, pts, opts); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// All writes every path concurrently. Formats are checked before any file is
// created; the first failure cancels outputs that have not started yet.
func All(ctx context.Context, pts []point.Point, paths []string, opts Options) error {
	for _, p := range paths {
		if _, err := FormatOf(p); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return WriteFile(p, pts, opts)
		})
	}
	return g.Wait()
}
