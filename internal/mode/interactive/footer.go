// ABOUTME: FooterModel renders the one-line status bar under the canvas
// ABOUTME: Shows point counts, store, drag mode, transient status and the last save error

package interactive

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var counts = message.NewPrinter(language.English)

// FooterModel holds the values shown in the status bar.
type FooterModel struct {
	active, redo int
	store        string
	drag         bool
	status       string
	saveErr      error
	width        int
}

// View renders the footer, truncated to the terminal width.
func (f FooterModel) View(s Styles) string {
	left := []string{
		s.Footer.Render(counts.Sprintf("%d points", f.active)),
		s.FooterDim.Render(counts.Sprintf("%d undone", f.redo)),
		s.FooterDim.Render("store " + f.store),
	}
	if f.drag {
		left = append(left, s.FooterDim.Render("drag on"))
	} else {
		left = append(left, s.FooterDim.Render("drag off"))
	}

	sep := s.FooterDim.Render(" · ")
	line := strings.Join(left, sep)

	switch {
	case f.saveErr != nil:
		line += sep + s.Error.Render("save failed: "+f.saveErr.Error())
	case f.status != "":
		line += sep + s.Status.Render(f.status)
	default:
		line += sep + s.FooterDim.Render("? for help")
	}

	if f.width > 0 && lipgloss.Width(line) > f.width {
		return lipgloss.NewStyle().MaxWidth(f.width).Render(line)
	}
	return line
}
