package config

import (
	"os"
	"path/filepath"
	"strings"
)

// expandPath replaces a leading ~ with the home directory and $VAR or
// ${VAR} with values from lookup. Unknown variables expand to "".
func expandPath(p string, lookup func(string) (string, bool)) string {
	if p == "" {
		return p
	}

	p = os.Expand(p, func(key string) string {
		v, _ := lookup(key)
		return v
	})
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// resolvePath expands p and makes it absolute against workDir.
func resolvePath(workDir, p string, lookup func(string) (string, bool)) string {
	p = expandPath(p, lookup)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workDir, p)
}
