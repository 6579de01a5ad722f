// ABOUTME: Tests for PNG, PDF and HTML exports and concurrent multi-file output
// ABOUTME: Validates formats by decoding or sniffing the written bytes

package export

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mauromedda/circles-go/internal/point"
	"github.com/mauromedda/circles-go/internal/render"
)

func testOptions() Options {
	return Options{
		Layout:     render.Layout{CellWidth: 1, CellHeight: 1, Radius: 5, Margin: 10},
		Color:      color.RGBA{R: 255, A: 255},
		Background: color.White,
	}
}

var drawing = []point.Point{point.At(10, 10), point.At(30, 20)}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.png", FormatPNG, false},
		{"dir/B.PDF", FormatPDF, false},
		{"c.htm", FormatHTML, false},
		{"d.html", FormatHTML, false},
		{"e.jpg", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			got, err := FormatOf(tt.path)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("FormatOf(%q) = %q, %v", tt.path, got, err)
			}
		})
	}
}

func TestPNG(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := PNG(&buf, drawing, testOptions()); err != nil {
		t.Fatalf("PNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 40 {
		t.Errorf("size = %dx%d, want 50x40", b.Dx(), b.Dy())
	}
	r, g, b, _ := img.At(15, 15).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("circle centre colour = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestPDF(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := PDF(&buf, drawing, testOptions()); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", buf.Bytes()[:min(buf.Len(), 16)])
	}
}

func TestPDF_Empty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := PDF(&buf, nil, testOptions()); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("empty drawing should still produce a page")
	}
}

func TestHTML(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := HTML(&buf, drawing, testOptions()); err != nil {
		t.Fatalf("HTML: %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, "<circle "); got != 2 {
		t.Errorf("circles = %d, want 2", got)
	}
	for _, want := range []string{`width="50"`, `cx="15"`, `fill="#ff0000"`, "circles (2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestAll(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "out.png"),
		filepath.Join(dir, "out.pdf"),
		filepath.Join(dir, "out.html"),
	}

	if err := All(context.Background(), drawing, paths, testOptions()); err != nil {
		t.Fatalf("All: %v", err)
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("%s: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
}

func TestAll_RejectsUnknownFormatUpFront(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	good := filepath.Join(dir, "out.png")

	err := All(context.Background(), drawing, []string{good, filepath.Join(dir, "out.gif")}, testOptions())
	if err == nil {
		t.Fatal("expected error")
	}
	if _, statErr := os.Stat(good); !os.IsNotExist(statErr) {
		t.Error("no file should be written when a format is unsupported")
	}
}

func TestWriteFile_BadDir(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "missing", "out.png")
	if err := WriteFile(path, drawing, testOptions()); err == nil {
		t.Error("expected error for missing directory")
	}
}
