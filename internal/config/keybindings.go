// ABOUTME: Keybindings model and loader for ~/.circles-go/keybindings.json
// ABOUTME: Maps canvas actions to bubbletea key strings; unknown actions are ignored

package config

import (
	"encoding/json"
	"maps"
	"os"
	"slices"
)

// KeyAction represents an action that can be bound to keys
type KeyAction string

const (
	ActionUndo        KeyAction = "undo"
	ActionRedo        KeyAction = "redo"
	ActionReset       KeyAction = "reset"
	ActionQuit        KeyAction = "quit"
	ActionHelp        KeyAction = "help"
	ActionCursorUp    KeyAction = "cursorUp"
	ActionCursorDown  KeyAction = "cursorDown"
	ActionCursorLeft  KeyAction = "cursorLeft"
	ActionCursorRight KeyAction = "cursorRight"
	ActionPlace       KeyAction = "place"
)

// Keybindings represents the keybindings configuration
type Keybindings struct {
	Bindings map[KeyAction][]string `json:"-"`
}

// RawKeybindings is for JSON marshaling
type RawKeybindings map[string][]string

// NewKeybindings creates a new Keybindings with default bindings
func NewKeybindings() *Keybindings {
	kb := &Keybindings{
		Bindings: make(map[KeyAction][]string),
	}
	kb.setDefaultBindings()
	return kb
}

func (kb *Keybindings) setDefaultBindings() {
	kb.Bindings[ActionUndo] = []string{"u", "ctrl+z"}
	kb.Bindings[ActionRedo] = []string{"r", "ctrl+y"}
	kb.Bindings[ActionReset] = []string{"R", "ctrl+r"}
	kb.Bindings[ActionQuit] = []string{"q", "ctrl+c"}
	kb.Bindings[ActionHelp] = []string{"?"}
	kb.Bindings[ActionCursorUp] = []string{"up", "k"}
	kb.Bindings[ActionCursorDown] = []string{"down", "j"}
	kb.Bindings[ActionCursorLeft] = []string{"left", "h"}
	kb.Bindings[ActionCursorRight] = []string{"right", "l"}
	kb.Bindings[ActionPlace] = []string{" ", "enter"}
}

// Actions returns every known action in sorted order.
func (kb *Keybindings) Actions() []KeyAction {
	return slices.Sorted(maps.Keys(kb.Bindings))
}

// LoadKeybindings loads keybindings from a file, starting from the defaults.
func LoadKeybindings(path string) (*Keybindings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw RawKeybindings
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	kb := NewKeybindings()
	for actionName, keys := range raw {
		action := KeyAction(actionName)
		if _, ok := kb.Bindings[action]; ok {
			kb.Bindings[action] = keys
		}
	}

	return kb, nil
}

// GetBindings returns the bindings for an action
func (kb *Keybindings) GetBindings(action KeyAction) []string {
	if kb == nil {
		return nil
	}
	return kb.Bindings[action]
}

// ExportTemplate exports current keybindings as a JSON template
func (kb *Keybindings) ExportTemplate() (string, error) {
	raw := make(RawKeybindings)
	for action, keys := range kb.Bindings {
		raw[string(action)] = keys
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
