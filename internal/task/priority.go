package task

import (
	"slices"
	"time"
)

// Entry pairs a task with its index in the owning collection.
type Entry struct {
	Index int
	Task  *Task
}

// HasHigherPriorityThan reports whether t ranks strictly above other.
// Both statuses must be fresh. The relation is not total: two tasks can
// each fail to rank above the other.
func (t *Task) HasHigherPriorityThan(other *Task) bool {
	self, that := t.Status(), other.Status()
	switch self {
	case StatusOverdue:
		if that != StatusOverdue {
			return true
		}
		return earlier(t.PlannedStart, other.PlannedStart)
	case StatusOngoing:
		switch that {
		case StatusOverdue:
			return false
		case StatusOngoing:
			return later(t.ActualStart, other.ActualStart)
		default:
			return true
		}
	case StatusPlanned:
		switch that {
		case StatusComplete, StatusBacklog:
			return true
		case StatusPlanned:
			return earlier(t.PlannedStart, other.PlannedStart)
		default:
			return false
		}
	case StatusComplete:
		switch that {
		case StatusBacklog:
			return true
		case StatusComplete:
			return later(t.ActualComplete, other.ActualComplete)
		default:
			return false
		}
	default:
		return false
	}
}

// earlier reports a < b where an unset time is the latest possible instant.
func earlier(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

// later reports a > b where an unset time is the earliest possible instant.
func later(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}

// ComparePriority orders a before b (negative) when a ranks higher, with
// the collection index as the final tie-break.
func ComparePriority(a, b Entry) int {
	switch {
	case a.Task.HasHigherPriorityThan(b.Task):
		return -1
	case b.Task.HasHigherPriorityThan(a.Task):
		return 1
	case a.Index < b.Index:
		return -1
	case a.Index > b.Index:
		return 1
	default:
		return 0
	}
}

// SortByPriority sorts entries in place, highest priority first.
func SortByPriority(entries []Entry) {
	slices.SortStableFunc(entries, ComparePriority)
}
