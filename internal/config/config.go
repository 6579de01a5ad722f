// ABOUTME: Settings loading with global + project config merge and CLI overrides
// ABOUTME: JSON files; defaults fill anything left unset, then values are validated

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Defaults applied by WithDefaults.
const (
	DefaultStore       = "file"
	DefaultMarker      = "●"
	DefaultMarkerColor = "#ff6b6b"
)

// Settings holds the merged configuration.
type Settings struct {
	Store       string `json:"store,omitempty"`
	DataDir     string `json:"data_dir,omitempty"`
	SQLitePath  string `json:"sqlite_path,omitempty"`
	ActiveKey   string `json:"active_key,omitempty"`
	RedoKey     string `json:"redo_key,omitempty"`
	Marker      string `json:"marker,omitempty"`
	MarkerColor string `json:"marker_color,omitempty"`
	Drag        *bool  `json:"drag,omitempty"`
	Journal     *bool  `json:"journal,omitempty"`
	LogFile     string `json:"log_file,omitempty"`
}

// DragEnabled reports whether moving with the button held places points.
func (s *Settings) DragEnabled() bool {
	return s.Drag == nil || *s.Drag
}

// JournalEnabled reports whether operations are journaled.
func (s *Settings) JournalEnabled() bool {
	return s.Journal == nil || *s.Journal
}

// Load reads and merges global and project-local settings.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return merge(global, project), nil
}

// LoadAll loads global and project settings, applies cli on top, fills
// defaults, and validates the result.
func LoadAll(projectRoot string, cli *Settings) (*Settings, error) {
	s, err := Load(projectRoot)
	if err != nil {
		return nil, err
	}
	s = merge(s, cli).WithDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadFile reads a Settings from a JSON file. Returns zero Settings if file
// does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays non-zero override values onto base.
func merge(base, override *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Store != "" {
		result.Store = override.Store
	}
	if override.DataDir != "" {
		result.DataDir = override.DataDir
	}
	if override.SQLitePath != "" {
		result.SQLitePath = override.SQLitePath
	}
	if override.ActiveKey != "" {
		result.ActiveKey = override.ActiveKey
	}
	if override.RedoKey != "" {
		result.RedoKey = override.RedoKey
	}
	if override.Marker != "" {
		result.Marker = override.Marker
	}
	if override.MarkerColor != "" {
		result.MarkerColor = override.MarkerColor
	}
	if override.Drag != nil {
		result.Drag = override.Drag
	}
	if override.Journal != nil {
		result.Journal = override.Journal
	}
	if override.LogFile != "" {
		result.LogFile = override.LogFile
	}

	return &result
}

// WithDefaults returns a copy with every unset path and style filled in.
func (s *Settings) WithDefaults() *Settings {
	out := *s
	if out.Store == "" {
		out.Store = DefaultStore
	}
	if out.DataDir == "" {
		out.DataDir = DataDir()
	}
	if out.SQLitePath == "" {
		out.SQLitePath = SQLiteFile()
	}
	if out.Marker == "" {
		out.Marker = DefaultMarker
	}
	if out.MarkerColor == "" {
		out.MarkerColor = DefaultMarkerColor
	}
	if out.LogFile == "" {
		out.LogFile = LogFile()
	}
	return &out
}

// Validate checks the store name, marker glyph and marker colour.
func (s *Settings) Validate() error {
	switch s.Store {
	case "", "file", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid store %q (want file, sqlite, or memory)", s.Store)
	}
	if s.Marker != "" {
		if err := ValidateMarker(s.Marker); err != nil {
			return err
		}
	}
	if s.MarkerColor != "" && !validColor(s.MarkerColor) {
		return fmt.Errorf("invalid marker_color %q (want #rrggbb or an ANSI index 0-255)", s.MarkerColor)
	}
	return nil
}

// ValidateMarker checks that glyph is one grapheme cluster occupying one or
// two terminal cells.
func ValidateMarker(glyph string) error {
	if n := uniseg.GraphemeClusterCount(glyph); n != 1 {
		return fmt.Errorf("marker %q must be a single character, got %d", glyph, n)
	}
	if w := runewidth.StringWidth(glyph); w < 1 || w > 2 {
		return fmt.Errorf("marker %q has display width %d, want 1 or 2", glyph, w)
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validColor(c string) bool {
	if hexColor.MatchString(c) {
		return true
	}
	n, err := strconv.Atoi(c)
	return err == nil && n >= 0 && n <= 255
}
