package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the configuration directory name under the XDG config home.
	DirName = "factorio-dash"

	// FileName is the configuration file name.
	FileName = "config.yaml"
)

// GetConfigDir returns the path to the factorio-dash configuration directory.
// It defaults to ~/.config/factorio-dash/.
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configHome, DirName), nil
}

// GetConfigPath returns the path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, FileName), nil
}

// EnsureDir creates a directory with 0700 permissions if it doesn't exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
