package store

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/arenta-go/internal/task"
)

// SchemaVersion is the version written to new task files.
const SchemaVersion = 1

const schemaURL = "https://github.com/nibzard/arenta-go/arenta.schema.json"

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// File is the on-disk layout of the task collection.
type File struct {
	SchemaVersion int      `json:"schema_version"`
	Tasks         []Record `json:"tasks"`
}

// Record is one persisted task. Unset timestamps are empty strings.
type Record struct {
	Description     string `json:"description"`
	PlannedStart    string `json:"planned_start"`
	PlannedComplete string `json:"planned_complete"`
	ActualStart     string `json:"actual_start"`
	ActualComplete  string `json:"actual_complete"`
	Deleted         bool   `json:"deleted,omitempty"`
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LoadOptions controls how a task file is read.
type LoadOptions struct {
	// SkipSchema disables JSON Schema validation. Task invariants are
	// always checked.
	SkipSchema bool
}

// Load reads the task file at path. A missing file yields an empty store.
func Load(path string, opts LoadOptions) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return Decode(data, opts)
}

// Decode parses and validates the contents of a task file.
func Decode(data []byte, opts LoadOptions) (*Store, error) {
	if !opts.SkipSchema {
		if errs := ValidateSchema(data); len(errs) > 0 {
			return nil, fmt.Errorf("validate task file: %w", errors.Join(errs...))
		}
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if f.SchemaVersion != SchemaVersion {
		return nil, &ValidationError{
			Path: "schema_version",
			Err:  fmt.Errorf("expected %d, got %d", SchemaVersion, f.SchemaVersion),
		}
	}

	tasks := make([]*task.Task, 0, len(f.Tasks))
	for i, rec := range f.Tasks {
		t, err := rec.toTask()
		if err != nil {
			return nil, &ValidationError{Path: fmt.Sprintf("tasks[%d]", i), Err: err}
		}
		tasks = append(tasks, t)
	}
	return New(tasks...), nil
}

// Save writes the collection to path with 2-space indentation, creating
// the parent directory when needed.
func (s *Store) Save(path string) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create task file directory: %w", err)
		}
	}

	// Write a sibling file and rename it over the target.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}

// Encode returns the task file contents.
func (s *Store) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s.File(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task file: %w", err)
	}
	return append(data, '\n'), nil
}

// File returns the persisted form of the collection.
func (s *Store) File() *File {
	f := &File{SchemaVersion: SchemaVersion, Tasks: make([]Record, 0, len(s.tasks))}
	for _, t := range s.tasks {
		f.Tasks = append(f.Tasks, recordOf(t))
	}
	return f
}

func recordOf(t *task.Task) Record {
	return Record{
		Description:     t.Description,
		PlannedStart:    formatTime(t.PlannedStart),
		PlannedComplete: formatTime(t.PlannedComplete),
		ActualStart:     formatTime(t.ActualStart),
		ActualComplete:  formatTime(t.ActualComplete),
		Deleted:         t.Deleted,
	}
}

func (r Record) toTask() (*task.Task, error) {
	t := &task.Task{Description: r.Description, Deleted: r.Deleted}
	fields := []struct {
		name  string
		value string
		dst   **time.Time
	}{
		{"planned_start", r.PlannedStart, &t.PlannedStart},
		{"planned_complete", r.PlannedComplete, &t.PlannedComplete},
		{"actual_start", r.ActualStart, &t.ActualStart},
		{"actual_complete", r.ActualComplete, &t.ActualComplete},
	}
	for _, f := range fields {
		ts, err := parseTime(f.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = ts
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func formatTime(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format(time.RFC3339Nano)
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load task schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile task schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ValidateSchema checks raw task file contents against the embedded JSON
// Schema and returns one *ValidationError per failing leaf.
func ValidateSchema(data []byte) []error {
	sch, err := schema()
	if err != nil {
		return []error{err}
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return []error{&ValidationError{Err: fmt.Errorf("parse task file: %w", err)}}
	}

	if err := sch.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return []error{err}
		}
		var errs []error
		collectSchemaErrors(&errs, ve)
		return errs
	}
	return nil
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
