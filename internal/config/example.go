package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# arenta configuration file
# Values can be overridden by environment variables (ARENTA_*) or CLI flags

# Task file (supports ~ and $VAR expansion)
data_file = "~/.arenta/tasks.json"

# Lock file held while an interactive session runs
lock_file = "~/.arenta.lock"

# Session journal directory
log_dir = "~/.arenta/logs"

# Console logging: debug, info, warn, error / text, json, logfmt
log_level = "info"
log_format = "text"

# Colored output (also disabled by NO_COLOR or when stdout is not a terminal)
color = true

# Hook command run after each change: <event> <index> <status> <description>
# hook_command = "/path/to/hook.sh"

# Validate the task file against its JSON Schema on load
validate_schema = true
`
}
