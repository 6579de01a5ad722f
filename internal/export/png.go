// ABOUTME: PNG exporter: rasterizes the drawing and encodes it with image/png

package export

import (
	"image/png"
	"io"

	"github.com/mauromedda/circles-go/internal/point"
	"github.com/mauromedda/circles-go/internal/render"
)

// PNG writes pts as filled circles to w.
func PNG(w io.Writer, pts []point.Point, opts Options) error {
	frame := opts.Layout.Fit(pts)
	img := render.Rasterize(pts, frame, opts.Color, opts.Background)
	return png.Encode(w, img)
}
