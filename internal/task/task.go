package task

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPlannedPair reports a schedule with only one of its two ends set.
	ErrPlannedPair = errors.New("planned start and planned complete must be set together")
	// ErrPlannedOrder reports a planned start after the planned complete.
	ErrPlannedOrder = errors.New("planned start is later than planned complete")
	// ErrActualOrder reports an actual start after the actual complete.
	ErrActualOrder = errors.New("actual start is later than actual complete")
)

// InvariantError reports a task whose timestamps break a lifecycle invariant.
type InvariantError struct {
	Description string
	Err         error
}

func (e *InvariantError) Error() string {
	if e.Description == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("task %q: %s", e.Description, e.Err)
}

// Unwrap returns the underlying error.
func (e *InvariantError) Unwrap() error {
	return e.Err
}

// Task is a single personal task.
type Task struct {
	Description     string
	PlannedStart    *time.Time
	PlannedComplete *time.Time
	ActualStart     *time.Time
	ActualComplete  *time.Time
	Deleted         bool

	status Status
}

// NewImmediate creates a task that starts right away.
func NewImmediate(description string, now time.Time) *Task {
	start := now
	return &Task{
		Description: description,
		ActualStart: &start,
		status:      StatusOngoing,
	}
}

// NewPlanned creates a scheduled task. The task is overdue from birth when
// its planned start has already passed.
func NewPlanned(description string, start, complete, now time.Time) (*Task, error) {
	t := &Task{
		Description:     description,
		PlannedStart:    &start,
		PlannedComplete: &complete,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.status = StatusPlanned
	if start.Before(now) {
		t.status = StatusOverdue
	}
	return t, nil
}

// NewBacklog creates a task with no schedule.
func NewBacklog(description string) *Task {
	return &Task{
		Description: description,
		status:      StatusBacklog,
	}
}

// Status returns the status cached by the last UpdateStatus, Start or
// Complete call.
func (t *Task) Status() Status {
	if t.status == "" {
		return StatusBacklog
	}
	return t.status
}

// UpdateStatus recomputes the cached status at now.
func (t *Task) UpdateStatus(now time.Time) {
	t.status = DeriveStatus(t, now)
}

// Start records now as the actual start.
func (t *Task) Start(now time.Time) {
	start := now
	t.ActualStart = &start
	t.status = StatusOngoing
}

// Complete records now as the actual completion.
func (t *Task) Complete(now time.Time) {
	done := now
	t.ActualComplete = &done
	t.status = StatusComplete
}

// Validate checks the schedule and execution invariants.
func (t *Task) Validate() error {
	if (t.PlannedStart == nil) != (t.PlannedComplete == nil) {
		return &InvariantError{Description: t.Description, Err: ErrPlannedPair}
	}
	if t.PlannedStart != nil && t.PlannedStart.After(*t.PlannedComplete) {
		return &InvariantError{Description: t.Description, Err: ErrPlannedOrder}
	}
	if t.ActualStart != nil && t.ActualComplete != nil && t.ActualStart.After(*t.ActualComplete) {
		return &InvariantError{Description: t.Description, Err: ErrActualOrder}
	}
	return nil
}

// Timestamps returns the set timestamps in field order.
func (t *Task) Timestamps() []time.Time {
	var out []time.Time
	for _, ts := range []*time.Time{t.PlannedStart, t.PlannedComplete, t.ActualStart, t.ActualComplete} {
		if ts != nil {
			out = append(out, *ts)
		}
	}
	return out
}

// Clone returns a deep copy of t, cached status included.
func (t *Task) Clone() *Task {
	c := *t
	c.PlannedStart = cloneTime(t.PlannedStart)
	c.PlannedComplete = cloneTime(t.PlannedComplete)
	c.ActualStart = cloneTime(t.ActualStart)
	c.ActualComplete = cloneTime(t.ActualComplete)
	return &c
}

func cloneTime(ts *time.Time) *time.Time {
	if ts == nil {
		return nil
	}
	v := *ts
	return &v
}
