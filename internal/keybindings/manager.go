// ABOUTME: Keybindings manager with O(1) key-to-action lookup
// ABOUTME: Merges global and local configs, detects conflicts, supports hot-reload

package keybindings

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/circles-go/internal/config"
)

// ConflictInfo describes a binding conflict where multiple actions share a key.
type ConflictInfo struct {
	Key     string
	Actions []config.KeyAction
}

// Manager provides O(1) key-to-action lookup from merged keybindings.
type Manager struct {
	bindings *config.Keybindings
	lookup   map[string]config.KeyAction // "ctrl+z" → ActionUndo
}

// New creates a Manager from global and local keybinding files.
// Local bindings override global ones. Missing files are ignored.
func New(globalPath, localPath string) *Manager {
	m := &Manager{}
	m.Reload(globalPath, localPath)
	return m
}

// NewFromBindings creates a Manager from an existing Keybindings instance.
func NewFromBindings(kb *config.Keybindings) *Manager {
	m := &Manager{bindings: kb}
	m.buildLookup()
	return m
}

// ActionForKey returns the action bound to the given key, or "" if unbound.
func (m *Manager) ActionForKey(msg tea.KeyMsg) config.KeyAction {
	return m.ActionFor(keyString(msg))
}

// ActionFor looks up an action by its config key string.
func (m *Manager) ActionFor(k string) config.KeyAction {
	return m.lookup[k]
}

// Conflicts detects keys bound to multiple actions, sorted by key.
func (m *Manager) Conflicts() []ConflictInfo {
	keyActions := make(map[string][]config.KeyAction)
	for _, action := range m.bindings.Actions() {
		for _, k := range m.bindings.GetBindings(action) {
			keyActions[k] = append(keyActions[k], action)
		}
	}

	var conflicts []ConflictInfo
	for _, k := range slices.Sorted(maps.Keys(keyActions)) {
		if actions := keyActions[k]; len(actions) > 1 {
			conflicts = append(conflicts, ConflictInfo{Key: k, Actions: actions})
		}
	}
	return conflicts
}

// Reload re-reads keybinding files and rebuilds the lookup table.
func (m *Manager) Reload(globalPath, localPath string) {
	kb := config.NewKeybindings()

	if globalPath != "" {
		if g, err := config.LoadKeybindings(globalPath); err == nil {
			mergeBindings(kb, g)
		}
	}
	if localPath != "" {
		if l, err := config.LoadKeybindings(localPath); err == nil {
			mergeBindings(kb, l)
		}
	}

	m.bindings = kb
	m.buildLookup()
}

// Keys returns the keys bound to action, for help text.
func (m *Manager) Keys(action config.KeyAction) []string {
	return m.bindings.GetBindings(action)
}

// FormatAll returns a markdown table of all keybindings for the help overlay.
func (m *Manager) FormatAll() string {
	var b strings.Builder
	b.WriteString("# Keybindings\n\n")

	categories := []struct {
		name    string
		actions []config.KeyAction
	}{
		{"Drawing", []config.KeyAction{
			config.ActionPlace, config.ActionUndo,
			config.ActionRedo, config.ActionReset,
		}},
		{"Cursor", []config.KeyAction{
			config.ActionCursorUp, config.ActionCursorDown,
			config.ActionCursorLeft, config.ActionCursorRight,
		}},
		{"Control", []config.KeyAction{
			config.ActionHelp, config.ActionQuit,
		}},
	}

	for _, cat := range categories {
		fmt.Fprintf(&b, "## %s\n\n| Keys | Action |\n|---|---|\n", cat.name)
		for _, action := range cat.actions {
			keys := m.bindings.GetBindings(action)
			if len(keys) == 0 {
				continue
			}
			fmt.Fprintf(&b, "| %s | %s |\n", formatKeys(keys), action)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Manager) buildLookup() {
	m.lookup = make(map[string]config.KeyAction, len(m.bindings.Bindings)*2)
	for action, keys := range m.bindings.Bindings {
		for _, k := range keys {
			m.lookup[k] = action
		}
	}
}

// mergeBindings overrides base bindings with overrides where present.
func mergeBindings(base, overrides *config.Keybindings) {
	maps.Copy(base.Bindings, overrides.Bindings)
}

// keyString converts a bubbletea key to the string format used in keybinding
// configs. bubbletea already renders "ctrl+z", "up", "enter"; only space
// needs normalizing.
func keyString(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return " "
	}
	return msg.String()
}

func formatKeys(keys []string) string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = "`" + k + "`"
	}
	return strings.Join(out, ", ")
}
