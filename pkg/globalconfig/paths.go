// Package globalconfig provides user-level configuration for nattd.
// Configuration is stored at $XDG_CONFIG_HOME/nattd/config.yaml and can be
// overridden with NATTD_* environment variables.
package globalconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// ConfigDirName is the name of the config directory under XDG_CONFIG_HOME.
	ConfigDirName = "nattd"
	// ConfigFileName is the name of the main config file.
	ConfigFileName = "config.yaml"
	// ConfigEnvVar overrides the config file location.
	ConfigEnvVar = "NATTD_CONFIG"
)

// GetConfigDir returns the config directory path.
func GetConfigDir() string {
	return filepath.Join(xdg.ConfigHome, ConfigDirName)
}

// GetConfigPath returns the full path to the config file. NATTD_CONFIG
// takes precedence.
func GetConfigPath() string {
	if envPath := os.Getenv(ConfigEnvVar); envPath != "" {
		return envPath
	}
	return filepath.Join(GetConfigDir(), ConfigFileName)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(path string) (bool, error) {
	if path == "" {
		path = GetConfigPath()
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(expanded); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
