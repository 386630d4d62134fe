// Package config persists user settings as a JSON key-value file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Dir returns the kernelctl config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/kernelctl if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "kernelctl"), nil
}

// SettingsPath returns the default settings file path.
func SettingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

// Settings is an arbitrary key-value settings map backed by a JSON file.
type Settings struct {
	path   string
	values map[string]interface{}
}

// LoadSettings reads the settings file at path. Any read or parse error
// yields an empty settings map, never a failure: a corrupt settings file
// must not take the tool down.
func LoadSettings(path string) *Settings {
	s := &Settings{path: path, values: make(map[string]interface{})}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var values map[string]interface{}
	if err := json.Unmarshal(data, &values); err != nil {
		return s
	}
	s.values = values
	return s
}

// Bool returns the boolean at key, or def when absent or not a bool.
func (s *Settings) Bool(key string, def bool) bool {
	v, ok := s.values[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Set stores a value under key. Save must be called to persist it.
func (s *Settings) Set(key string, value interface{}) {
	s.values[key] = value
}

// Save writes the settings back to disk, creating the parent directory
// if needed. The error is reported but callers may choose to ignore it;
// settings are never load-bearing.
func (s *Settings) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
