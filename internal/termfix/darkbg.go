// ABOUTME: Declares a dark terminal background to lipgloss before bubbletea initializes
// ABOUTME: Imported for side effects by cmd/circles ahead of any bubbletea import

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// With an explicit background lipgloss skips its OSC 10/11 colour query.
	// Replies to that query arrive as input and would reach the TUI as keys
	// or clicks. bubbletea's own init asks lipgloss for the background, so this
	// package must not import bubbletea, directly or indirectly.
	lipgloss.SetHasDarkBackground(true)
}
