package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// envLookup returns a lookup that prefers the process environment and
// falls back to the variables of the .env file at path, if any. An empty
// process variable counts as unset.
func envLookup(path string) (func(string) (string, bool), error) {
	dotenv, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.LookupEnv, nil
		}
		return nil, err
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config, lookup func(string) (string, bool), sources map[string]ConfigSource) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	setEnv := func(field string) {
		sources[field] = SourceEnv
	}

	if v := get("ARENTA_DATA"); v != "" {
		cfg.DataFile = v
		setEnv("data_file")
	}
	if v := get("ARENTA_LOCK"); v != "" {
		cfg.LockFile = v
		setEnv("lock_file")
	}
	if v := get("ARENTA_LOG_DIR"); v != "" {
		cfg.LogDir = v
		setEnv("log_dir")
	}
	if v := get("ARENTA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := get("ARENTA_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := get("ARENTA_HOOK"); v != "" {
		cfg.HookCommand = v
		setEnv("hook_command")
	}
	if v := get("ARENTA_COLOR"); v != "" {
		cfg.Color = boolFromString(v)
		setEnv("color")
	}
	// https://no-color.org: any non-empty value disables color.
	if v := get("NO_COLOR"); v != "" {
		cfg.Color = false
		setEnv("color")
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
