package task

import (
	"fmt"
	"time"
)

// Color is a semantic color. How it is painted is up to the caller.
type Color string

const (
	ColorNeutral Color = "neutral"
	ColorInfo    Color = "info"
	ColorDanger  Color = "danger"
	ColorWarning Color = "warning"
	ColorSuccess Color = "success"
)

// ColorOf maps a status to its semantic color.
func ColorOf(s Status) Color {
	switch s {
	case StatusPlanned:
		return ColorInfo
	case StatusOverdue:
		return ColorDanger
	case StatusOngoing:
		return ColorWarning
	case StatusComplete:
		return ColorSuccess
	default:
		return ColorNeutral
	}
}

// Color returns the semantic color of the cached status.
func (t *Task) Color() Color {
	return ColorOf(t.Status())
}

// MinutesBetween returns the whole minutes from earlier to later. A later
// instant that precedes earlier means the caller read a stale status, and
// it panics.
func MinutesBetween(earlier, later time.Time) int {
	if later.Before(earlier) {
		panic(fmt.Sprintf("task: instant %s precedes %s", later.Format(time.RFC3339), earlier.Format(time.RFC3339)))
	}
	return int(later.Sub(earlier) / time.Minute)
}

// StatusLine describes the cached status relative to now.
func (t *Task) StatusLine(now time.Time) string {
	switch t.Status() {
	case StatusPlanned:
		return fmt.Sprintf("planned to start in %s", minutes(MinutesBetween(now, *t.PlannedStart)))
	case StatusOverdue:
		return fmt.Sprintf("%s overdue", minutes(MinutesBetween(*t.PlannedStart, now)))
	case StatusOngoing:
		return fmt.Sprintf("ongoing for %s", minutes(MinutesBetween(*t.ActualStart, now)))
	case StatusComplete:
		return fmt.Sprintf("complete %s ago", minutes(MinutesBetween(*t.ActualComplete, now)))
	default:
		return "in backlog"
	}
}

func minutes(n int) string {
	if n == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", n)
}
