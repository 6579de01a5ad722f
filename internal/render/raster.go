// ABOUTME: Rasterizes points as filled circles with golang.org/x/image/vector
// ABOUTME: Layout maps canvas units to pixels and sizes the image to the points

package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/mauromedda/circles-go/internal/point"
)

// Circle radius used by exports, in pixels.
const DefaultRadius = 5

// kappa is the control point distance for a quarter circle as a cubic Bézier.
const kappa = 0.5522847498

// Layout maps canvas units to output pixels.
type Layout struct {
	CellWidth, CellHeight float64
	Radius                float64
	Margin                float64
}

// DefaultLayout matches a terminal cell's roughly 1:2 aspect ratio.
func DefaultLayout() Layout {
	return Layout{CellWidth: 10, CellHeight: 20, Radius: DefaultRadius, Margin: 10}
}

// Frame is a Layout fitted to a set of points.
type Frame struct {
	Layout
	MinX, MinY    float64
	Width, Height int
}

// Fit computes the smallest frame holding every circle plus the margin.
// An empty set yields a blank square of twice the margin.
func (l Layout) Fit(pts []point.Point) Frame {
	f := Frame{Layout: l}
	if len(pts) == 0 {
		side := max(int(math.Ceil(2*l.Margin)), 1)
		f.Width, f.Height = side, side
		return f
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		x, y := p.X*l.CellWidth, p.Y*l.CellHeight
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	pad := l.Radius + l.Margin
	f.MinX, f.MinY = minX-pad, minY-pad
	f.Width = max(int(math.Ceil(maxX-minX+2*pad)), 1)
	f.Height = max(int(math.Ceil(maxY-minY+2*pad)), 1)
	return f
}

// Project returns the pixel centre of p inside the frame.
func (f Frame) Project(p point.Point) (float64, float64) {
	return p.X*f.CellWidth - f.MinX, p.Y*f.CellHeight - f.MinY
}

// Rasterize draws pts as filled circles of colour fg on bg.
func Rasterize(pts []point.Point, f Frame, fg, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if len(pts) == 0 {
		return dst
	}

	z := vector.NewRasterizer(f.Width, f.Height)
	for _, p := range pts {
		cx, cy := f.Project(p)
		addCircle(z, float32(cx), float32(cy), float32(f.Radius))
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(fg), image.Point{})
	return dst
}

func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// ParseColor accepts #rrggbb. Anything else yields fallback.
func ParseColor(s string, fallback color.Color) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	var rgb [3]uint8
	for i := range 3 {
		hi, ok1 := hexNibble(s[1+2*i])
		lo, ok2 := hexNibble(s[2+2*i])
		if !ok1 || !ok2 {
			return fallback
		}
		rgb[i] = hi<<4 | lo
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
