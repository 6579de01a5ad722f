// ABOUTME: HTML exporter rendering the drawing as an inline SVG with html/template
// ABOUTME: Circles keep placement order so later markers paint over earlier ones

package export

import (
	"fmt"
	"html/template"
	"image/color"
	"io"

	"github.com/mauromedda/circles-go/internal/point"
)

type svgCircle struct {
	CX, CY float64
}

type htmlPage struct {
	Width, Height int
	Radius        float64
	Fill          string
	Background    string
	Count         int
	Circles       []svgCircle
}

// HTML writes pts as a standalone HTML document with an SVG canvas to w.
func HTML(w io.Writer, pts []point.Point, opts Options) error {
	frame := opts.Layout.Fit(pts)
	page := htmlPage{
		Width:      frame.Width,
		Height:     frame.Height,
		Radius:     frame.Radius,
		Fill:       hexColor(opts.Color),
		Background: hexColor(opts.Background),
		Count:      len(pts),
		Circles:    make([]svgCircle, len(pts)),
	}
	for i, p := range pts {
		x, y := frame.Project(p)
		page.Circles[i] = svgCircle{CX: x, CY: y}
	}
	return htmlTmpl.Execute(w, page)
}

func hexColor(c color.Color) string {
	r, g, b := rgb8(c)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

var htmlTmpl = template.Must(template.New("drawing").Parse(htmlTemplate))

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>circles ({{ .Count }})</title>
<style>
  body { margin: 0; padding: 24px; background: #1e1e2e; }
  svg { display: block; margin: 0 auto; box-shadow: 0 0 12px #0008; }
</style>
</head>
<body>
<svg xmlns="http://www.w3.org/2000/svg" width="{{ .Width }}" height="{{ .Height }}" viewBox="0 0 {{ .Width }} {{ .Height }}">
  <rect width="100%" height="100%" fill="{{ .Background }}"/>
  {{- range .Circles }}
  <circle cx="{{ .CX }}" cy="{{ .CY }}" r="{{ $.Radius }}" fill="{{ $.Fill }}"/>
  {{- end }}
</svg>
</body>
</html>
`
