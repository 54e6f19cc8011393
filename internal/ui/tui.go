// Package ui provides terminal output: semantic color painting, list and
// timeline rendering, line prompting, and the live dashboard.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/arenta-go/internal/store"
	"github.com/nibzard/arenta-go/internal/task"
)

// DashboardOptions configures the live dashboard.
type DashboardOptions struct {
	DataFile string
	Load     store.LoadOptions
	Color    bool
	Interval time.Duration
	Now      func() time.Time
}

// RunDashboard shows the task file read-only, reloading it every interval.
func RunDashboard(ctx context.Context, opts DashboardOptions) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newDashboard(opts, NewPainter(os.Stdout, opts.Color))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

type dashboard struct {
	opts         DashboardOptions
	painter      *Painter
	now          time.Time
	offset       int // days from today shown
	loadErr      error
	entries      []task.Entry
	filter       task.Status
	showHelp     bool
	showTimeline bool
}

type tickMsg time.Time

func newDashboard(opts DashboardOptions, painter *Painter) *dashboard {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &dashboard{
		opts:         opts,
		painter:      painter,
		showTimeline: true,
	}
}

// filterKeys maps number keys to status filters, in priority order.
var filterKeys = map[string]task.Status{
	"1": task.StatusOverdue,
	"2": task.StatusOngoing,
	"3": task.StatusPlanned,
	"4": task.StatusComplete,
	"5": task.StatusBacklog,
}

func (m *dashboard) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.opts.Interval)
}

func (m *dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if status, ok := filterKeys[key]; ok {
			m.filter = status
			return m, nil
		}
		switch key {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "t":
			m.showTimeline = !m.showTimeline
		case "h", "?":
			m.showHelp = !m.showHelp
		case "0":
			m.filter = ""
		case "left":
			m.offset--
			m.refresh()
		case "right":
			m.offset++
			m.refresh()
		case "home":
			m.offset = 0
			m.refresh()
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.opts.Interval)
	}
	return m, nil
}

func (m *dashboard) date() time.Time {
	return m.now.AddDate(0, 0, m.offset)
}

func (m *dashboard) refresh() {
	m.now = m.opts.Now()
	st, err := store.Load(m.opts.DataFile, m.opts.Load)
	if err != nil {
		m.loadErr = err
		m.entries = nil
		return
	}
	m.loadErr = nil

	f := task.TimelineFilter(m.date())
	if m.offset == 0 {
		f = task.TodayFilter(m.now)
	}
	m.entries = st.Visible(m.now, f)
}

// filtered returns the entries matching the status filter, in collection
// order.
func (m *dashboard) filtered() []task.Entry {
	if m.filter == "" {
		return m.entries
	}
	var out []task.Entry
	for _, e := range m.entries {
		if !e.Task.Deleted && e.Task.Status() == m.filter {
			out = append(out, e)
		}
	}
	return out
}

func (m *dashboard) View() string {
	var b strings.Builder
	writeTitle(&b, m.painter)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.opts.Interval)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.opts.Interval)
		return b.String()
	}

	writeOverview(&b, m.painter, Counts(m.entries))
	if m.filter != "" {
		fmt.Fprintf(&b, "Filter: %s (0 to clear)\n\n", m.filter)
	}

	entries := m.filtered()
	fmt.Fprintf(&b, "Tasks for %s\n\n", m.date().Format("Mon 2006-01-02"))
	ranked := append([]task.Entry(nil), entries...)
	task.SortByPriority(ranked)
	if err := WriteList(&b, m.painter, ranked, m.now, false); err != nil {
		b.WriteString(err.Error() + "\n")
	}
	b.WriteString("\n")

	if m.showTimeline {
		if err := WriteTimeline(&b, m.painter, entries, m.date(), m.now); err != nil {
			b.WriteString(err.Error() + "\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Task File: %s\n\n", m.opts.DataFile)
	writeFooter(&b, m.opts.Interval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func writeTitle(b *strings.Builder, p *Painter) {
	title := "arenta"
	b.WriteString(p.Bold(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, p *Painter, counts map[task.Status]int) {
	parts := make([]string, 0, len(counts))
	for _, s := range task.Statuses() {
		parts = append(parts, fmt.Sprintf("%s: %d", p.Paint(task.ColorOf(s), string(s)), counts[s]))
	}
	b.WriteString("  " + strings.Join(parts, "  ") + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload task file\n")
	b.WriteString("  t            Toggle timeline\n")
	b.WriteString("  left, right  Previous or next day\n")
	b.WriteString("  home         Back to today\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by overdue\n")
	b.WriteString("  2            Filter by ongoing\n")
	b.WriteString("  3            Filter by planned\n")
	b.WriteString("  4            Filter by complete\n")
	b.WriteString("  5            Filter by backlog\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	fmt.Fprintf(b, "Press h for help | q to quit | Refreshing every %s\n", interval)
}
