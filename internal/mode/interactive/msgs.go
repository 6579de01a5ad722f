// ABOUTME: Message types delivered to AppModel from background goroutines
// ABOUTME: Sent through tea.Program.Send so Update stays single-threaded

package interactive

import "github.com/mauromedda/circles-go/internal/config"

// SettingsChangedMsg carries freshly reloaded settings, or the reload error.
type SettingsChangedMsg struct {
	Settings *config.Settings
	Err      error
}

// KeybindingsChangedMsg asks the model to re-read keybinding files.
type KeybindingsChangedMsg struct{}
