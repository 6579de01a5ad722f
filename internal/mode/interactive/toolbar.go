// ABOUTME: Toolbar with Undo, Reset and Redo buttons and their enable rules
// ABOUTME: HitTest maps a clicked column back to the button's action

package interactive

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/circles-go/internal/config"
)

type button struct {
	label  string
	action config.KeyAction
}

var toolbarButtons = []button{
	{"Undo", config.ActionUndo},
	{"Reset", config.ActionReset},
	{"Redo", config.ActionRedo},
}

// buttonGap is the number of blank columns between buttons.
const buttonGap = 1

// ToolbarModel renders the button row. The enable flags mirror the engine.
type ToolbarModel struct {
	canUndo, canRedo, canReset bool
	title                      string
	width                      int
}

// Enabled reports whether the button for action is clickable.
func (t ToolbarModel) Enabled(action config.KeyAction) bool {
	switch action {
	case config.ActionUndo:
		return t.canUndo
	case config.ActionRedo:
		return t.canRedo
	case config.ActionReset:
		return t.canReset
	}
	return false
}

// HitTest returns the button under column x.
func (t ToolbarModel) HitTest(x int) (config.KeyAction, bool) {
	col := 0
	for _, b := range toolbarButtons {
		w := len(b.label) + 2 // Padding(0, 1)
		if x >= col && x < col+w {
			return b.action, true
		}
		col += w + buttonGap
	}
	return "", false
}

// View renders the toolbar on one line, with the title right-aligned when it fits.
func (t ToolbarModel) View(s Styles) string {
	parts := make([]string, 0, len(toolbarButtons))
	for _, b := range toolbarButtons {
		style := s.ButtonDisabled
		if t.Enabled(b.action) {
			style = s.ButtonActive
		}
		parts = append(parts, style.Render(b.label))
	}
	row := strings.Join(parts, strings.Repeat(" ", buttonGap))

	if t.title != "" {
		title := s.Title.Render(t.title)
		if pad := t.width - lipgloss.Width(row) - lipgloss.Width(title); pad > 0 {
			row += strings.Repeat(" ", pad) + title
		}
	}
	return row
}
