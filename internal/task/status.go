package task

import (
	"fmt"
	"time"
)

// Status represents the derived lifecycle phase of a task.
type Status string

const (
	StatusBacklog  Status = "backlog"
	StatusPlanned  Status = "planned"
	StatusOverdue  Status = "overdue"
	StatusOngoing  Status = "ongoing"
	StatusComplete Status = "complete"
)

// Statuses lists every status in descending priority class order.
func Statuses() []Status {
	return []Status{StatusOverdue, StatusOngoing, StatusPlanned, StatusComplete, StatusBacklog}
}

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusBacklog, StatusPlanned, StatusOverdue, StatusOngoing, StatusComplete:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid status %q, must be one of: backlog, planned, overdue, ongoing, complete", s)
	}
}

// rank orders the status classes; a higher rank sorts first.
func (s Status) rank() int {
	switch s {
	case StatusOverdue:
		return 4
	case StatusOngoing:
		return 3
	case StatusPlanned:
		return 2
	case StatusComplete:
		return 1
	default:
		return 0
	}
}

// DeriveStatus computes the status of t at now. It never looks at the
// cached status, so clearing a timestamp moves the task back to whatever
// phase the remaining timestamps imply.
func DeriveStatus(t *Task, now time.Time) Status {
	switch {
	case t.ActualComplete != nil && t.ActualComplete.Before(now):
		return StatusComplete
	case t.ActualStart != nil && t.ActualStart.Before(now):
		return StatusOngoing
	case t.PlannedStart != nil && t.PlannedStart.Before(now):
		return StatusOverdue
	case t.PlannedStart != nil:
		return StatusPlanned
	default:
		return StatusBacklog
	}
}
