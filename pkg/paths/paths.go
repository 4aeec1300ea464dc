// Package paths provides centralized path handling for getpkg.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for getpkg
	EnvConfigDir = "GETPKG_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for getpkg
	EnvCacheDir = "GETPKG_CACHE_DIR"

	// EnvStateDir overrides the XDG state directory for getpkg
	EnvStateDir = "GETPKG_STATE_DIR"
)

// AppDirName is the directory name used below each XDG base directory.
// It is not user-configurable; user-facing paths belong in pkg/config.
const AppDirName = "getpkg"

// ConfigDir returns the directory holding the user settings file
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the path of the user settings file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CacheDir returns the directory used for downloaded installer files
func CacheDir() string {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.CacheHome, AppDirName)
}

// InstallerCacheDir returns the subdirectory of CacheDir holding
// downloaded installers, one file per download
func InstallerCacheDir() string {
	return filepath.Join(CacheDir(), "installers")
}

// StateDir returns the directory used for logs and other mutable state
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFile returns the path of the append-mode log file
func LogFile() string {
	return filepath.Join(StateDir(), "getpkg.log")
}

// DefaultManifestDir returns the default root of the local manifest
// source: a directory of YAML manifests, one package per file
func DefaultManifestDir() string {
	return filepath.Join(xdg.DataHome, AppDirName, "manifests")
}

// EnsureDir creates dir (and parents) if it does not exist
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
