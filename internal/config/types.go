package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nibzard/arenta-go/internal/arentadir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values. Paths are expanded when the config is finalized.
var (
	DefaultDataFile = arentadir.DataPath("~")
	DefaultLockFile = arentadir.LockPath("~")
	DefaultLogDir   = arentadir.LogDirPath("~")
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for arenta.
type Config struct {
	// Paths
	DataFile string `toml:"data_file"`
	LockFile string `toml:"lock_file"`
	LogDir   string `toml:"log_dir"`

	// Logging configuration
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Output
	Color bool `toml:"color"`

	// Hooks
	HookCommand string `toml:"hook_command"`

	// Validate the task file against its JSON Schema on load
	ValidateSchema bool `toml:"validate_schema"`

	// Working directory (computed)
	WorkDir string `toml:"-"`

	// Config files that were read (computed)
	UserFile    string `toml:"-"`
	ProjectFile string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Fields returns the configurable keys in display order.
func Fields() []string {
	return []string{
		"data_file",
		"lock_file",
		"log_dir",
		"log_level",
		"log_format",
		"color",
		"hook_command",
		"validate_schema",
	}
}

// Value returns the value of a configurable key for display.
func (c *Config) Value(field string) string {
	switch field {
	case "data_file":
		return c.DataFile
	case "lock_file":
		return c.LockFile
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "color":
		return fmt.Sprint(c.Color)
	case "hook_command":
		return c.HookCommand
	case "validate_schema":
		return fmt.Sprint(c.ValidateSchema)
	}
	return ""
}

var (
	validLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validFormats = []string{"text", "json", "logfmt"}
)

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	if !slices.Contains(validLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level %q (expected one of %s)", c.LogLevel, strings.Join(validLevels, ", "))
	}
	if !slices.Contains(validFormats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("invalid log_format %q (expected one of %s)", c.LogFormat, strings.Join(validFormats, ", "))
	}
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("data_file is empty")
	}
	return nil
}
