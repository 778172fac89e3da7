// Package paths resolves the catalog's configuration and data directories.
package paths

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// Project-local directory names.
const (
	DefaultConfigDirName = ".catalog"
	DefaultDataDirName   = ".catalog-db"
)

// Files inside the configuration directory.
const (
	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CATALOG_CONFIG_DIR"
	EnvDataDir   = "CATALOG_DATA_DIR"
)

const appName = "catalog"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/catalog (fallback ~/.config/catalog)
// macOS:   ~/Library/Application Support/catalog
// Windows: %APPDATA%/catalog
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir returns the configuration directory:
// flag > CATALOG_CONFIG_DIR > nearest .catalog directory at or above the
// working directory > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	local, err := findProjectDir()
	if err != nil {
		return "", err
	}
	if local != "" {
		return local, nil
	}
	return DefaultConfigDir()
}

// findProjectDir walks up from the working directory looking for a
// .catalog directory. Returns "" when none exists.
func findProjectDir() (string, error) {
	dir, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, DefaultConfigDirName)
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ResolveDataDir returns the data directory:
// flag > CATALOG_DATA_DIR > data_dir from config.yaml > $(CWD)/.catalog-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the config.yaml path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// EnvFile returns the optional .env path inside configDir.
func EnvFile(configDir string) string {
	return filepath.Join(configDir, EnvFileName)
}
