// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.arenta/arenta.toml or OS-specific config directory)
// 3. Project config file (arenta.toml or .arenta.toml in the working directory)
// 4. Environment variables (ARENTA_*, NO_COLOR), with a .env file in the
// working directory filling in variables that are not set
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.arenta/arenta.toml (preferred)
// - Windows: %APPDATA%\arenta\arenta.toml
// - macOS: ~/Library/Application Support/arenta/arenta.toml
// - Linux/BSD: $XDG_CONFIG_HOME/arenta/arenta.toml or ~/.config/arenta/arenta.toml
//
// Project-level config locations (overrides user config):
// - ./arenta.toml (preferred)
// - ./.arenta.toml
package config
