package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.arenta/arenta.toml or OS-specific config dir)
// 3. Project config file (arenta.toml or .arenta.toml in current directory)
// 4. Environment variables, then .env in the current directory
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg.WorkDir = wd

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range Fields() {
		sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		cfg.UserFile = userConfigFile
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(wd); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		cfg.ProjectFile = projectConfigFile
	}

	// 4. Override from environment
	lookup, err := envLookup(filepath.Join(wd, ".env"))
	if err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	loadFromEnv(cfg, lookup, sources)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg, lookup); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
	}, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.LockFile = DefaultLockFile
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.Color = true
	cfg.ValidateSchema = true
}

// loadConfigFile decodes TOML from path over cfg and records the keys the
// file defines.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	for _, field := range Fields() {
		if md.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// finalizeConfig resolves paths and validates the result. Variables in
// paths may come from .env as well as the environment.
func finalizeConfig(cfg *Config, lookup func(string) (string, bool)) error {
	cfg.DataFile = resolvePath(cfg.WorkDir, cfg.DataFile, lookup)
	cfg.LockFile = resolvePath(cfg.WorkDir, cfg.LockFile, lookup)
	cfg.LogDir = resolvePath(cfg.WorkDir, cfg.LogDir, lookup)
	return cfg.Validate()
}
