// Package store holds the ordered task collection and reads and writes the
// task file.
//
// The task file is JSON validated against an embedded JSON Schema:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {
//	      "description": "write report",
//	      "planned_start": "2026-10-16T09:00:00+02:00",
//	      "planned_complete": "2026-10-16T10:30:00+02:00",
//	      "actual_start": "",
//	      "actual_complete": "",
//	      "deleted": true
//	    }
//	  ]
//	}
//
// Unset timestamps are empty strings and "deleted" is omitted when false.
// After the schema check every record must also satisfy the task
// invariants; a file that fails either check is not loaded.
//
// # Indices
//
// Commands address tasks by their position in the collection. Deleting a
// task only flags it, so indices stay stable across a session. Purge drops
// flagged records and Sort reorders the collection; both renumber.
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - RFC 3339 timestamps carrying their UTC offset
package store
