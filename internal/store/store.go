package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/nibzard/arenta-go/internal/task"
)

var (
	// ErrIndexOutOfRange reports an index that names no task.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrDeleted reports an operation on a deleted task.
	ErrDeleted = errors.New("task is deleted")
)

// IndexError carries the index that an operation was given.
type IndexError struct {
	Index int
	Err   error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("task %d: %s", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *IndexError) Unwrap() error {
	return e.Err
}

// Store is the ordered task collection. Indices are positions in the
// collection and stay stable until Purge or Sort.
type Store struct {
	tasks []*task.Task
}

// New returns a store holding tasks in order.
func New(tasks ...*task.Task) *Store {
	return &Store{tasks: append([]*task.Task(nil), tasks...)}
}

// Len returns the number of records, deleted ones included.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns the records in collection order.
func (s *Store) Tasks() []*task.Task {
	return append([]*task.Task(nil), s.tasks...)
}

// Get returns the record at index i.
func (s *Store) Get(i int) (*task.Task, error) {
	if i < 0 || i >= len(s.tasks) {
		return nil, &IndexError{Index: i, Err: ErrIndexOutOfRange}
	}
	return s.tasks[i], nil
}

func (s *Store) live(i int) (*task.Task, error) {
	t, err := s.Get(i)
	if err != nil {
		return nil, err
	}
	if t.Deleted {
		return nil, &IndexError{Index: i, Err: ErrDeleted}
	}
	return t, nil
}

// Add appends t and returns its index.
func (s *Store) Add(t *task.Task) int {
	s.tasks = append(s.tasks, t)
	return len(s.tasks) - 1
}

// Start records now as the actual start of task i. It fails without
// touching the task when that would begin after its completion.
func (s *Store) Start(i int, now time.Time) (*task.Task, error) {
	t, err := s.live(i)
	if err != nil {
		return nil, err
	}
	if t.ActualComplete != nil && now.After(*t.ActualComplete) {
		return nil, &task.InvariantError{Description: t.Description, Err: task.ErrActualOrder}
	}
	t.Start(now)
	return t, nil
}

// Complete records now as the actual completion of task i. It fails
// without touching the task when that would end before its start.
func (s *Store) Complete(i int, now time.Time) (*task.Task, error) {
	t, err := s.live(i)
	if err != nil {
		return nil, err
	}
	if t.ActualStart != nil && t.ActualStart.After(now) {
		return nil, &task.InvariantError{Description: t.Description, Err: task.ErrActualOrder}
	}
	t.Complete(now)
	return t, nil
}

// Delete flags task i as deleted. The record keeps its index.
func (s *Store) Delete(i int) (*task.Task, error) {
	t, err := s.live(i)
	if err != nil {
		return nil, err
	}
	t.Deleted = true
	return t, nil
}

// Purge drops deleted records and returns how many were removed. The
// remaining records are renumbered.
func (s *Store) Purge() int {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Deleted {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	clear(s.tasks[len(kept):])
	s.tasks = kept
	return removed
}

// Edit applies fn to a copy of task i and commits the copy only when fn
// succeeds and the copy satisfies the task invariants. The status of the
// committed task is recomputed at now.
func (s *Store) Edit(i int, now time.Time, fn func(*task.Task) error) (*task.Task, error) {
	t, err := s.live(i)
	if err != nil {
		return nil, err
	}
	edited := t.Clone()
	if err := fn(edited); err != nil {
		return nil, err
	}
	if err := edited.Validate(); err != nil {
		return nil, err
	}
	edited.UpdateStatus(now)
	s.tasks[i] = edited
	return edited, nil
}

// Refresh recomputes every cached status at now.
func (s *Store) Refresh(now time.Time) {
	for _, t := range s.tasks {
		t.UpdateStatus(now)
	}
}

// Entries pairs every record with its index.
func (s *Store) Entries() []task.Entry {
	entries := make([]task.Entry, len(s.tasks))
	for i, t := range s.tasks {
		entries[i] = task.Entry{Index: i, Task: t}
	}
	return entries
}

// Visible refreshes statuses at now and returns the records satisfying f
// in collection order. Deleted records satisfy f like any other so that
// their slot still shows; callers decide how to render them.
func (s *Store) Visible(now time.Time, f task.Filter) []task.Entry {
	s.Refresh(now)
	var out []task.Entry
	for _, e := range s.Entries() {
		if e.Task.Satisfy(f) {
			out = append(out, e)
		}
	}
	return out
}

// Ranked is Visible in priority order, for listings.
func (s *Store) Ranked(now time.Time, f task.Filter) []task.Entry {
	out := s.Visible(now, f)
	task.SortByPriority(out)
	return out
}

// Sort reorders the whole collection by priority at now. Indices change.
func (s *Store) Sort(now time.Time) {
	s.Refresh(now)
	entries := s.Entries()
	task.SortByPriority(entries)
	for i, e := range entries {
		s.tasks[i] = e.Task
	}
}
