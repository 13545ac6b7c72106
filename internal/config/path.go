package config

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory based on the host OS.
// It prefers standard locations when available and falls back to a dotdir
// in the user's home directory.
func DefaultLogDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "./logs"
	}

	// XDG (Linux) override
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "baler", "logs")
	}

	// macOS: ~/Library/Logs/Baler
	if isDir(filepath.Join(homeDir, "Library")) {
		return filepath.Join(homeDir, "Library", "Logs", "Baler")
	}

	// Windows: %USERPROFILE%/AppData/Local/Baler/logs
	if isDir(filepath.Join(homeDir, "AppData")) {
		return filepath.Join(homeDir, "AppData", "Local", "Baler", "logs")
	}

	// Fallback: ~/.baler/logs
	return filepath.Join(homeDir, ".baler", "logs")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
