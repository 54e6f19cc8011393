package store

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (use json or yaml)", s)
}

// exportRecord is the YAML view of a record. Unset timestamps are left out
// rather than written as empty strings.
type exportRecord struct {
	Index           int    `yaml:"index"`
	Description     string `yaml:"description"`
	PlannedStart    string `yaml:"planned_start,omitempty"`
	PlannedComplete string `yaml:"planned_complete,omitempty"`
	ActualStart     string `yaml:"actual_start,omitempty"`
	ActualComplete  string `yaml:"actual_complete,omitempty"`
	Deleted         bool   `yaml:"deleted,omitempty"`
}

// Export writes the collection to w. JSON output is byte-identical to the
// task file.
func (s *Store) Export(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		data, err := s.Encode()
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		return nil
	case FormatYAML:
		doc := struct {
			SchemaVersion int            `yaml:"schema_version"`
			Tasks         []exportRecord `yaml:"tasks"`
		}{SchemaVersion: SchemaVersion, Tasks: make([]exportRecord, 0, len(s.tasks))}
		for i, rec := range s.File().Tasks {
			doc.Tasks = append(doc.Tasks, exportRecord{
				Index:           i,
				Description:     rec.Description,
				PlannedStart:    rec.PlannedStart,
				PlannedComplete: rec.PlannedComplete,
				ActualStart:     rec.ActualStart,
				ActualComplete:  rec.ActualComplete,
				Deleted:         rec.Deleted,
			})
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml export: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml export: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown export format %q", format)
}
