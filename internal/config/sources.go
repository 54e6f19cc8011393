package config

import (
	"os"
	"path/filepath"

	"github.com/nibzard/arenta-go/internal/arentadir"
)

// findProjectConfigFile looks for a config file in dir.
func findProjectConfigFile(dir string) string {
	names := []string{"arenta.toml", ".arenta.toml"}
	for _, name := range names {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// findUserConfigFile returns the first user config file that exists, or
// "" when there is none.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	for _, p := range arentadir.UserConfigPaths(home) {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// ConfigFile returns the config file with the highest precedence that was
// read, or "" when none was.
func (cws *ConfigWithSources) ConfigFile() string {
	if cws.Config.ProjectFile != "" {
		return cws.Config.ProjectFile
	}
	return cws.Config.UserFile
}
