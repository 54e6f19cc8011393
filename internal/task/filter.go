package task

import (
	"fmt"
	"time"
)

// CompareOp compares the calendar date of a timestamp with a reference date.
type CompareOp int

const (
	OpLess CompareOp = iota
	OpLessEq
	OpEqual
	OpGreater
	OpGreaterEq
)

// String returns the operator symbol.
func (op CompareOp) String() string {
	switch op {
	case OpLess:
		return "<"
	case OpLessEq:
		return "<="
	case OpEqual:
		return "="
	case OpGreater:
		return ">"
	case OpGreaterEq:
		return ">="
	default:
		return fmt.Sprintf("CompareOp(%d)", int(op))
	}
}

// ParseCompareOp parses one of <, <=, =, >, >=.
func ParseCompareOp(s string) (CompareOp, error) {
	switch s {
	case "<":
		return OpLess, nil
	case "<=":
		return OpLessEq, nil
	case "=", "==":
		return OpEqual, nil
	case ">":
		return OpGreater, nil
	case ">=":
		return OpGreaterEq, nil
	default:
		return 0, fmt.Errorf("invalid comparison operator %q", s)
	}
}

func (op CompareOp) holds(cmp int) bool {
	switch op {
	case OpLess:
		return cmp < 0
	case OpLessEq:
		return cmp <= 0
	case OpEqual:
		return cmp == 0
	case OpGreater:
		return cmp > 0
	case OpGreaterEq:
		return cmp >= 0
	default:
		return false
	}
}

// Filter selects the tasks shown by one rendering pass.
type Filter struct {
	Op             CompareOp
	Date           time.Time
	IncludeBacklog bool
	// Verbose asks list rendering to print every timestamp.
	Verbose bool
}

// TodayFilter matches anything touching today, plus the backlog.
func TodayFilter(now time.Time) Filter {
	return Filter{Op: OpEqual, Date: now, IncludeBacklog: true}
}

// RecentFilter matches anything touching the last n days, plus the backlog.
func RecentFilter(now time.Time, days int) Filter {
	return Filter{Op: OpGreaterEq, Date: now.AddDate(0, 0, -days), IncludeBacklog: true}
}

// TimelineFilter matches anything touching date, backlog excluded.
func TimelineFilter(date time.Time) Filter {
	return Filter{Op: OpEqual, Date: date}
}

// Satisfy reports whether t passes f. The cached status is used for the
// backlog check, so refresh it first.
func (t *Task) Satisfy(f Filter) bool {
	if t.Status() == StatusBacklog && f.IncludeBacklog {
		return true
	}
	for _, ts := range t.Timestamps() {
		if f.Op.holds(CompareDates(ts, f.Date)) {
			return true
		}
	}
	return false
}

// CompareDates compares the calendar dates of a and b, each read in its
// own location.
func CompareDates(a, b time.Time) int {
	ka, kb := dateKey(a), dateKey(b)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	default:
		return 0
	}
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return CompareDates(a, b) == 0
}

func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
