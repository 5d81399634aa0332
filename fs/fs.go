package fs

import (
	"os"
	"path/filepath"
)

// ConfigFile is the name of the config file inside DefaultConfigDir.
const ConfigFile = "config.toml"

// DefaultConfigDir returns the default config directory for diffcore.
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/diffcore.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "diffcore")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "diffcore")
}

// DefaultConfigPath returns the full path of the default config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFile)
}
