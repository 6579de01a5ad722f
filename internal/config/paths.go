// ABOUTME: Standard filesystem paths for circles configuration and data
// ABOUTME: Resolves ~/.circles-go/ for global and .circles-go/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".circles-go"
	projectDirName = ".circles-go"
)

// GlobalDir returns the user-global config directory (~/.circles-go/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.circles-go/ in cwd).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.json")
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "config.json")
}

// DataDir returns the default directory of the file store.
func DataDir() string {
	return filepath.Join(GlobalDir(), "data")
}

// SQLiteFile returns the default database path of the sqlite store.
func SQLiteFile() string {
	return filepath.Join(GlobalDir(), "circles.db")
}

// JournalDir returns the directory holding per-session operation journals.
func JournalDir() string {
	return filepath.Join(GlobalDir(), "journal")
}

// LogFile returns the default log file used while the TUI owns the terminal.
func LogFile() string {
	return filepath.Join(GlobalDir(), "circles.log")
}

// GlobalKeybindingsFile returns the path to the global keybindings file.
func GlobalKeybindingsFile() string {
	return filepath.Join(GlobalDir(), "keybindings.json")
}

// LocalKeybindingsFile returns the path to the project keybindings file.
func LocalKeybindingsFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "keybindings.json")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
