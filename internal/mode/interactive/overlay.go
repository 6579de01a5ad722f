// ABOUTME: overlayRender composites an overlay box centered on a background terminal view
// ABOUTME: Splices overlay lines into background rows, preserving the columns on both sides

package interactive

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayRender composites overlay text centered on top of background text.
// The result always has exactly termHeight lines.
func overlayRender(background, overlay string, termWidth, termHeight int) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < termHeight {
		bgLines = append(bgLines, "")
	}
	bgLines = bgLines[:termHeight]

	ovLines := strings.Split(overlay, "\n")
	ovWidth := 0
	for _, l := range ovLines {
		ovWidth = max(ovWidth, ansi.StringWidth(l))
	}

	startRow := max((termHeight-len(ovLines))/2, 0)
	startCol := max((termWidth-ovWidth)/2, 0)

	for i, ovLine := range ovLines {
		row := startRow + i
		if row >= termHeight {
			break
		}

		bgLine := bgLines[row]
		if w := ansi.StringWidth(bgLine); w < startCol {
			bgLine += strings.Repeat(" ", startCol-w)
		}

		prefix := ansi.Truncate(bgLine, startCol, "")
		suffix := ansi.TruncateLeft(bgLine, startCol+ansi.StringWidth(ovLine), "")
		bgLines[row] = prefix + ovLine + "\x1b[0m" + suffix
	}

	return strings.Join(bgLines, "\n")
}
