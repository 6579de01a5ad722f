// ABOUTME: Entry point for the Bubble Tea drawing TUI
// ABOUTME: Creates the tea.Program, starts config watchers, and blocks until exit

package interactive

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/circles-go/internal/config"
)

// Run starts the interactive app in the alternate screen with mouse
// reporting. Blocks until the user quits.
func Run(deps AppDeps) error {
	m := NewAppModel(deps)
	defer m.sh.cancel()

	p := tea.NewProgram(
		m,
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Inject the program reference into the shared state.
	// tea.NewProgram copies the model value but shares the pointer.
	m.sh.program = p
	m.startWatchers()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}

// startWatchers polls settings and keybinding files until the model's
// context is cancelled. Results reach Update through Program.Send.
func (m AppModel) startWatchers() {
	sh := m.sh
	if m.deps.Reload != nil && len(m.deps.SettingsPaths) > 0 {
		reload := m.deps.Reload
		w := config.NewWatcher(config.DefaultWatchInterval, func() {
			s, err := reload()
			sh.program.Send(SettingsChangedMsg{Settings: s, Err: err})
		}, m.deps.SettingsPaths...)
		go w.Run(sh.ctx)
	}
	if len(m.deps.KeybindingPaths) > 0 {
		w := config.NewWatcher(config.DefaultWatchInterval, func() {
			sh.program.Send(KeybindingsChangedMsg{})
		}, m.deps.KeybindingPaths...)
		go w.Run(sh.ctx)
	}
}
