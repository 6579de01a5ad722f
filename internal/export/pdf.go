// ABOUTME: PDF exporter using gofpdf on a page sized to the drawing
// ABOUTME: One point unit per pixel so PDF and PNG exports share a layout

package export

import (
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/mauromedda/circles-go/internal/point"
)

// PDF writes pts as filled circles on a single page to w.
func PDF(w io.Writer, pts []point.Point, opts Options) error {
	frame := opts.Layout.Fit(pts)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(frame.Width), Ht: float64(frame.Height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("circles", true)
	pdf.AddPage()

	br, bg, bb := rgb8(opts.Background)
	pdf.SetFillColor(br, bg, bb)
	pdf.Rect(0, 0, float64(frame.Width), float64(frame.Height), "F")

	r, g, b := rgb8(opts.Color)
	pdf.SetFillColor(r, g, b)
	for _, p := range pts {
		x, y := frame.Project(p)
		pdf.Circle(x, y, frame.Radius, "F")
	}

	return pdf.Output(w)
}

func rgb8(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}
