// Package config loads the optional TOML settings file. Precedence is
// resolved by the command layer: flags override the file, the file overrides
// environment fallbacks, and built-in defaults come last.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const fileName = "config.toml"

// Settings mirrors ~/.ragquery/config.toml. Zero values mean "not set".
type Settings struct {
	Endpoint       string `toml:"endpoint"`
	TopK           int    `toml:"top_k"`
	RemoteBackend  bool   `toml:"remote_backend"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DefaultPath returns ~/.ragquery/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ragquery", fileName), nil
}

// Load reads the settings file at path, or the default path when path is
// empty. A missing file is not an error; it yields zero settings.
func Load(path string) (Settings, error) {
	var settings Settings
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return settings, err
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse config %s: %w", path, err)
	}
	return settings, nil
}
