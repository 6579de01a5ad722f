// ABOUTME: Lipgloss palette for the toolbar, canvas, footer and help overlay
// ABOUTME: Marker colour comes from settings and is rebuilt on hot-reload

package interactive

import "github.com/charmbracelet/lipgloss"

// Styles is the full palette used by View.
type Styles struct {
	ButtonActive   lipgloss.Style
	ButtonDisabled lipgloss.Style
	Title          lipgloss.Style
	Border         lipgloss.Style
	Marker         lipgloss.Style
	Cursor         lipgloss.Style
	Footer         lipgloss.Style
	FooterDim      lipgloss.Style
	Status         lipgloss.Style
	Error          lipgloss.Style
	HelpBox        lipgloss.Style
}

// NewStyles builds the palette with markers drawn in markerColor.
func NewStyles(markerColor string) Styles {
	return Styles{
		ButtonActive: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")),
		ButtonDisabled: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")),
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Marker:    lipgloss.NewStyle().Foreground(lipgloss.Color(markerColor)),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FooterDim: lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
	}
}
