package config

import (
	"flag"
)

// flagFields maps flag names to the config keys they set.
var flagFields = map[string]string{
	"data":       "data_file",
	"lock":       "lock_file",
	"log-dir":    "log_dir",
	"log-level":  "log_level",
	"log-format": "log_format",
	"no-color":   "color",
	"hook":       "hook_command",
}

// parseFlags defines the global flags on fs, parses args, and records
// which config keys the flags set.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("arenta", flag.ContinueOnError)
	}

	// Path flags
	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "Path to task file")
	fs.StringVar(&cfg.LockFile, "lock", cfg.LockFile, "Path to lock file")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Session journal directory")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Console log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Console log format (text|json|logfmt)")

	// Output
	noColor := fs.Bool("no-color", !cfg.Color, "Disable colored output")

	// Hooks
	fs.StringVar(&cfg.HookCommand, "hook", cfg.HookCommand, "Hook command to run after each change")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Color = !*noColor
	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
