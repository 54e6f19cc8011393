package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nibzard/arenta-go/internal/task"
	"github.com/nibzard/arenta-go/internal/timeline"
)

// TimestampLayout is how timestamps are printed in verbose listings.
const TimestampLayout = "2006-01-02 15:04"

// ListLine renders one listing line. The task status must be fresh at now.
func ListLine(p *Painter, e task.Entry, now time.Time) string {
	if e.Task.Deleted {
		return fmt.Sprintf("%3d  %s", e.Index, p.Faint("(deleted)"))
	}
	return fmt.Sprintf("%3d  %s  %s  (%s)",
		e.Index, p.Status(e.Task.Status()), e.Task.Description, e.Task.StatusLine(now))
}

// TimestampLines renders the four timestamps of t, one per line.
func TimestampLines(t *task.Task) []string {
	fields := []struct {
		name string
		ts   *time.Time
	}{
		{"planned start", t.PlannedStart},
		{"planned complete", t.PlannedComplete},
		{"actual start", t.ActualStart},
		{"actual complete", t.ActualComplete},
	}
	lines := make([]string, len(fields))
	for i, f := range fields {
		value := "-"
		if f.ts != nil {
			value = f.ts.Format(TimestampLayout)
		}
		lines[i] = fmt.Sprintf("%-17s %s", f.name+":", value)
	}
	return lines
}

// WriteList prints entries in the given order, with timestamps under each
// live task when verbose is set.
func WriteList(w io.Writer, p *Painter, entries []task.Entry, now time.Time, verbose bool) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no tasks")
		return err
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(ListLine(p, e, now))
		b.WriteString("\n")
		if !verbose || e.Task.Deleted {
			continue
		}
		for _, line := range TimestampLines(e.Task) {
			b.WriteString("       ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Timeline lays out entries for date. Letters follow the position in
// entries; the canvas skips deleted tasks, so their letters go unused.
func Timeline(entries []task.Entry, date, now time.Time) (*timeline.Chart, error) {
	tasks := make([]*task.Task, len(entries))
	for i, e := range entries {
		tasks[i] = e.Task
	}
	chart, err := timeline.Render(tasks, date, now)
	if err != nil {
		return nil, fmt.Errorf("render timeline: %w", err)
	}
	return chart, nil
}

// WriteTimeline prints the timeline for date followed by its legend.
func WriteTimeline(w io.Writer, p *Painter, entries []task.Entry, date, now time.Time) error {
	chart, err := Timeline(entries, date, now)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(p.Chart(chart))
	b.WriteString(Legend(p, entries))
	_, err = io.WriteString(w, b.String())
	return err
}

// Legend maps each timeline letter to its live task.
func Legend(p *Painter, entries []task.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if e.Task.Deleted {
			continue
		}
		letter := p.Paint(e.Task.Color(), string(timeline.Letter(i)))
		fmt.Fprintf(&b, "%s  [%d] %s\n", letter, e.Index, e.Task.Description)
	}
	if b.Len() == 0 {
		return "no tasks\n"
	}
	return b.String()
}

// Counts tallies the live entries by status.
func Counts(entries []task.Entry) map[task.Status]int {
	counts := make(map[task.Status]int, len(task.Statuses()))
	for _, s := range task.Statuses() {
		counts[s] = 0
	}
	for _, e := range entries {
		if e.Task.Deleted {
			continue
		}
		counts[e.Task.Status()]++
	}
	return counts
}
