package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "kurodb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/kurodb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/kurodb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/kurodb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/kurodb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// OceansFilePath returns the full path to the oceans.yaml file with the
// named ocean polygons. Returns ~/.config/kurodb/oceans.yaml by default.
func OceansFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "oceans.yaml")
}
