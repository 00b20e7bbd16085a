package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// SupportedFormats lists the config file formats we support
var SupportedFormats = []string{"yaml", "toml", "json"}

// WriteConfig writes cfg to path in the given format. It refuses to
// overwrite an existing file.
func WriteConfig(cfg *Config, path, format string) error {
	if !slices.Contains(SupportedFormats, format) {
		return fmt.Errorf("unsupported format %q, supported: %v", format, SupportedFormats)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	v := NewViperFromConfig(cfg)
	v.SetConfigType(format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfigPath returns the user config file path for format.
func DefaultConfigPath(format string) (string, error) {
	dir, err := UserConfigDir(AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config."+format), nil
}

// GenerateConfig creates a default configuration file in the user config directory
func GenerateConfig(format string) (string, error) {
	path, err := DefaultConfigPath(format)
	if err != nil {
		return "", err
	}
	if err := WriteConfig(DefaultConfig(), path, format); err != nil {
		return path, err
	}
	return path, nil
}
