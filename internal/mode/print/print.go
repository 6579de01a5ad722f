// ABOUTME: Non-interactive output of the persisted drawing in ansi, text, JSON, or YAML form
// ABOUTME: ansi rasterizes the points and prints them as a half-block preview

package print

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/circles-go/internal/export"
	"github.com/mauromedda/circles-go/internal/point"
	"github.com/mauromedda/circles-go/internal/render"
)

// Output formats.
const (
	FormatANSI = "ansi"
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 80

// Config configures print mode.
type Config struct {
	Format string // "ansi" (default), "text", "json", "yaml"
	Width  int    // columns available to the ansi preview
}

// State is the persisted drawing as printed by the json and yaml formats.
type State struct {
	ActiveKey string        `json:"active_key" yaml:"active_key"`
	RedoKey   string        `json:"redo_key" yaml:"redo_key"`
	Active    []point.Point `json:"active" yaml:"active"`
	Redo      []point.Point `json:"redo" yaml:"redo"`
}

// Run writes st to w in the configured format.
func Run(w io.Writer, cfg Config, st State) error {
	if st.Active == nil {
		st.Active = []point.Point{}
	}
	if st.Redo == nil {
		st.Redo = []point.Point{}
	}

	switch cfg.Format {
	case "", FormatANSI:
		return writeANSI(w, cfg.Width, st)
	case FormatText:
		return writeText(w, st)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want ansi, text, json, or yaml)", cfg.Format)
	}
}

func writeANSI(w io.Writer, width int, st State) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if len(st.Active) == 0 {
		_, err := fmt.Fprintf(w, "no points (%d undone)\n", len(st.Redo))
		return err
	}

	opts := export.DefaultOptions()
	frame := opts.Layout.Fit(st.Active)
	img := render.Rasterize(st.Active, frame, opts.Color, opts.Background)

	lines := render.HalfBlock(img, width)
	lines = append(lines, fmt.Sprintf("%d points, %d undone", len(st.Active), len(st.Redo)))
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func writeText(w io.Writer, st State) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d):\n", st.ActiveKey, len(st.Active))
	for _, p := range st.Active {
		fmt.Fprintf(&b, "  %v\n", p)
	}
	fmt.Fprintf(&b, "%s (%d):\n", st.RedoKey, len(st.Redo))
	for _, p := range st.Redo {
		fmt.Fprintf(&b, "  %v\n", p)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
