// Package lock keeps two interactive sessions from editing the same task
// file at once.
package lock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrLocked reports a lock file that already exists.
var ErrLocked = errors.New("another arenta session is running")

// Lock is a held lock file.
type Lock struct {
	Path string
}

// Acquire creates path exclusively and writes the current pid into it.
// When path exists it returns an error wrapping ErrLocked.
func Acquire(path string) (*Lock, error) {
	if path == "" {
		return nil, fmt.Errorf("lock path is empty")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create lock dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			if pid, ok := Owner(path); ok {
				return nil, fmt.Errorf("%w (pid %d, lock file %s)", ErrLocked, pid, path)
			}
			return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, path)
		}
		return nil, fmt.Errorf("create lock file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	return &Lock{Path: path}, nil
}

// Release removes the lock file. Releasing a nil lock or one whose file is
// already gone is not an error.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}

// Owner returns the pid recorded in the lock file at path.
func Owner(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// Held reports whether a lock file exists at path.
func Held(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
