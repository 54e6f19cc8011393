package logging

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// followInterval is how often Tail polls a followed journal for new lines.
const followInterval = 200 * time.Millisecond

// Session is one journal file.
type Session struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
}

// Sessions lists the journals in dir, newest first. A missing dir has none.
func Sessions(dir string) ([]Session, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read journal dir: %w", err)
	}

	var sessions []Session
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), JournalExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sessions = append(sessions, Session{
			Name:    strings.TrimSuffix(entry.Name(), JournalExt),
			Path:    filepath.Join(dir, entry.Name()),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	// Names start with a UTC timestamp, so they break mod time ties.
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].ModTime.Equal(sessions[j].ModTime) {
			return sessions[i].ModTime.After(sessions[j].ModTime)
		}
		return sessions[i].Name > sessions[j].Name
	})
	return sessions, nil
}

// FindLatest returns the path of the newest journal in dir, or "" when
// there is none.
func FindLatest(dir string) (string, error) {
	sessions, err := Sessions(dir)
	if err != nil || len(sessions) == 0 {
		return "", err
	}
	return sessions[0].Path, nil
}

// Tail copies the last n lines of the journal at path to w, or all of it
// when n <= 0. With follow it keeps copying appended lines until ctx is
// done.
func Tail(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	if err := tailLines(w, file, n); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ticker := time.NewTicker(followInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := io.Copy(w, file); err != nil {
				return fmt.Errorf("follow journal: %w", err)
			}
		}
	}
}

// tailLines writes the last n lines of r, keeping at most n in memory.
func tailLines(w io.Writer, r io.Reader, n int) error {
	if n <= 0 {
		if _, err := io.Copy(w, r); err != nil {
			return fmt.Errorf("read journal: %w", err)
		}
		return nil
	}

	ring := make([]string, 0, n)
	start := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(ring) < n {
			ring = append(ring, scanner.Text())
			continue
		}
		ring[start] = scanner.Text()
		start = (start + 1) % n
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read journal: %w", err)
	}

	for i := range ring {
		if _, err := fmt.Fprintln(w, ring[(start+i)%len(ring)]); err != nil {
			return err
		}
	}
	return nil
}
