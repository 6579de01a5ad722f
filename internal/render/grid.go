// ABOUTME: Text canvas renderer: draws markers at their cells with lipgloss styles
// ABOUTME: Points outside the viewport are skipped; wide glyphs take two cells

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mauromedda/circles-go/internal/point"
)

// CursorGlyph marks the keyboard cursor on an empty cell.
const CursorGlyph = "+"

// Canvas draws points onto a Width x Height cell grid.
type Canvas struct {
	Width, Height int
	Marker        string
	MarkerStyle   lipgloss.Style
	CursorStyle   lipgloss.Style
}

// Cursor is an optional highlighted cell.
type Cursor struct {
	X, Y    int
	Visible bool
}

// Cells returns the set of visible occupied cells. Repeated points share a cell.
func (c Canvas) Cells(pts []point.Point) map[[2]int]bool {
	cells := make(map[[2]int]bool, len(pts))
	for _, p := range pts {
		x, y := p.Cell()
		if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
			continue
		}
		cells[[2]int{x, y}] = true
	}
	return cells
}

// Render returns Height lines, each exactly Width cells wide.
func (c Canvas) Render(pts []point.Point, cur Cursor) string {
	if c.Width <= 0 || c.Height <= 0 {
		return ""
	}
	marker := c.Marker
	if marker == "" {
		marker = "●"
	}
	mw := max(runewidth.StringWidth(marker), 1)
	cells := c.Cells(pts)

	var b strings.Builder
	for y := range c.Height {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.Width; {
			onCursor := cur.Visible && cur.X == x && cur.Y == y
			switch {
			case cells[[2]int{x, y}] && x+mw <= c.Width:
				style := c.MarkerStyle
				if onCursor {
					style = style.Reverse(true)
				}
				b.WriteString(style.Render(marker))
				x += mw
			case onCursor:
				b.WriteString(c.CursorStyle.Render(CursorGlyph))
				x++
			default:
				b.WriteByte(' ')
				x++
			}
		}
	}
	return b.String()
}
