// Package paths resolves the configuration directory and the data file.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// File and directory names.
const (
	AppDirName      = "gradebook"
	ConfigFileName  = "config.yaml"
	SessionFileName = "session.db"

	// DefaultDataFileName is created in the working directory when nothing
	// else names the data file.
	DefaultDataFileName = "datos_escolares.xlsx"
)

// Environment variable names for overrides.
const (
	EnvConfigDir = "GRADEBOOK_CONFIG_DIR"
	EnvDataFile  = "GRADEBOOK_DATA_FILE"
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
// Linux:   $XDG_CONFIG_HOME/gradebook (fallback ~/.config/gradebook)
// macOS:   ~/Library/Application Support/gradebook
// Windows: %APPDATA%/gradebook
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppDirName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > GRADEBOOK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataFile returns the data file following the precedence chain:
// flag > GRADEBOOK_DATA_FILE env > configValue > CWD default.
func ResolveDataFile(flag, configValue string) (string, error) {
	for _, v := range []string{flag, os.Getenv(EnvDataFile), configValue} {
		if v != "" {
			return filepath.Abs(v)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataFileName), nil
}

// ConfigFile returns the config.yaml path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// SessionFile returns the session database path inside configDir.
func SessionFile(configDir string) string {
	return filepath.Join(configDir, SessionFileName)
}
