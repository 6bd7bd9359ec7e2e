package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/symkeeper/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for symkeeper
	EnvConfigDir = "SYMKEEPER_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for symkeeper
	EnvStateDir = "SYMKEEPER_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DirName is the directory name for symkeeper-specific files
	DirName = "symkeeper"

	// DefaultConfigFile is the configuration file looked up when none is given
	DefaultConfigFile = "symkeeper.toml"

	// DefaultLockExtension replaces the config file extension to name the lock file
	DefaultLockExtension = "lock"

	// SettingsFile holds user settings inside the config directory
	SettingsFile = "settings.toml"

	// LogFileName is the name of the log file
	LogFileName = "symkeeper.log"
)

// ConfigDir returns the directory for user-level symkeeper files.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, DirName)
}

// StateDir returns the directory for symkeeper's log file.
// xdg.StateHome is cached at init, so XDG_STATE_HOME is checked first.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, DirName)
	}
	return filepath.Join(xdg.StateHome, DirName)
}

// SettingsPath returns the path of the optional user settings file.
func SettingsPath() string {
	return filepath.Join(ConfigDir(), SettingsFile)
}

// LogFilePath returns the path to the symkeeper log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// FindConfig determines the configuration file using the following priority:
// 1. explicit (the --config flag), used as given even if it does not exist
// 2. name in the current working directory
// 3. name in ConfigDir()
//
// When nothing is found the working directory candidate is returned so the
// loader can report a meaningful error.
func FindConfig(explicit, name string) (string, error) {
	if name == "" {
		name = DefaultConfigFile
	}
	if explicit != "" {
		abs, err := filepath.Abs(ExpandHome(explicit))
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid config path %q", explicit)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to get current directory")
	}
	local := filepath.Join(cwd, name)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	user := filepath.Join(ConfigDir(), name)
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}
	return local, nil
}

// LockFilePath derives the lock file path from the configuration path by
// replacing its extension: symkeeper.toml -> symkeeper.lock. A leading dot
// does not start an extension.
func LockFilePath(configPath, ext string) string {
	if ext == "" {
		ext = DefaultLockExtension
	}
	ext = strings.TrimPrefix(ext, ".")

	dir, base := filepath.Split(configPath)
	stem := base
	if e := filepath.Ext(base); e != "" && e != base {
		stem = strings.TrimSuffix(base, e)
	}
	return filepath.Join(dir, stem+"."+ext)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrEnvExpansion, "failed to get home directory")
	}
	return homeDir, nil
}

// ExpandHome expands a leading ~ or ~/ to the home directory. Anything else,
// including ~user, is returned unchanged.
func ExpandHome(path string) string {
	prefix, rest := splitTilde(path)
	if prefix == "" {
		return path
	}
	home, err := GetHomeDirectory()
	if err != nil {
		return path
	}
	return home + rest
}

// splitTilde returns the "~" prefix and the remainder when path starts with
// ~ alone or ~/.
func splitTilde(path string) (string, string) {
	if path == "~" {
		return "~", ""
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return "~", path[1:]
	}
	return "", path
}
