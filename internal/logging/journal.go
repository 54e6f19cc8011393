// Package logging provides the console logger, the per-session journal of
// task mutations, and journal discovery and tail output.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// JournalExt is the file extension of session journals.
const JournalExt = ".jsonl"

// Entry is one journaled mutation.
type Entry struct {
	Event       string
	Index       int
	Status      string
	Description string
}

// Journal appends one JSON line per mutation to a per-session file.
type Journal struct {
	Dir       string
	SessionID string
	Path      string
	file      *os.File
	logger    *log.Logger
}

// OpenJournal creates dir if needed and starts a new session file in it.
func OpenJournal(dir string, now time.Time) (*Journal, error) {
	if dir == "" {
		return nil, fmt.Errorf("journal dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	session := uuid.NewString()
	name := fmt.Sprintf("%s-%s%s", now.UTC().Format("20060102-150405"), session[:8], JournalExt)
	path := filepath.Join(dir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create journal file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		Level:           log.DebugLevel,
		Formatter:       log.JSONFormatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	}).With("session", session)

	return &Journal{
		Dir:       dir,
		SessionID: session,
		Path:      path,
		file:      file,
		logger:    logger,
	}, nil
}

// Record writes e to the journal. A nil journal discards it.
func (j *Journal) Record(e Entry) {
	if j == nil {
		return
	}
	j.logger.Info(e.Event,
		"event", e.Event,
		"index", e.Index,
		"status", e.Status,
		"description", e.Description,
	)
}

// Note writes a free-form line, such as session start and end.
func (j *Journal) Note(msg string, keyvals ...any) {
	if j == nil {
		return
	}
	j.logger.Info(msg, keyvals...)
}

// Close closes the journal file.
func (j *Journal) Close() error {
	if j == nil || j.file == nil {
		return nil
	}
	return j.file.Close()
}
