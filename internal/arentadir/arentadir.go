// Package arentadir provides constants and utilities for the ~/.arenta state directory.
package arentadir

import (
	"os"
	"path/filepath"
)

const (
	// Dir is the name of the arenta state directory.
	Dir = ".arenta"

	// DefaultDataFile is the default task file name (inside .arenta).
	DefaultDataFile = "tasks.json"

	// DefaultConfigFile is the default config file name (inside .arenta).
	DefaultConfigFile = "arenta.toml"

	// DefaultLogDir is the default journal directory name (inside .arenta).
	DefaultLogDir = "logs"

	// LockFile is the default lock file name (next to .arenta in the home directory).
	LockFile = ".arenta.lock"
)

// Home returns the user's home directory, or "." when it cannot be found.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return home
}

// DirPath returns the full path to the .arenta directory within base.
func DirPath(base string) string {
	if base == "" {
		base = "."
	}
	return filepath.Join(base, Dir)
}

// DataPath returns the full path to the task file within base.
func DataPath(base string) string {
	return filepath.Join(DirPath(base), DefaultDataFile)
}

// ConfigPath returns the full path to the config file within base.
func ConfigPath(base string) string {
	return filepath.Join(DirPath(base), DefaultConfigFile)
}

// LogDirPath returns the full path to the journal directory within base.
func LogDirPath(base string) string {
	return filepath.Join(DirPath(base), DefaultLogDir)
}

// LockPath returns the full path to the lock file within base.
func LockPath(base string) string {
	if base == "" {
		base = "."
	}
	return filepath.Join(base, LockFile)
}

// UserConfigPaths lists where a user config file may live, in lookup
// order: inside the state directory under home, then the platform config
// directory ($XDG_CONFIG_HOME, %AppData%, or ~/Library/Application Support).
func UserConfigPaths(home string) []string {
	paths := []string{ConfigPath(home)}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		paths = append(paths, filepath.Join(dir, "arenta", DefaultConfigFile))
	}
	return paths
}
