// Package paths resolves configuration and data directory locations.
// Implements: prd005-configuration (R1 config dir, R2 data dir, R3 precedence).
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names used when no override is active.
const (
	DefaultConfigDirName = ".hallmark"
	DefaultDataDirName   = ".hallmark-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "HALLMARK_CONFIG_DIR"
	EnvDataDir   = "HALLMARK_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/hallmark (fallback ~/.config/hallmark)
// macOS:   ~/Library/Application Support/hallmark
// Windows: %APPDATA%/hallmark
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "hallmark"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "hallmark"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "hallmark"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > HALLMARK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the snapshot data directory following the
// precedence chain: flag > config.yaml value > HALLMARK_DATA_DIR env >
// $(CWD)/.hallmark-db.
//
// The CWD-relative default keeps snapshot databases next to the data
// they index, which is the common interactive workflow.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
