package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nibzard/arenta-go/internal/task"
	"github.com/nibzard/arenta-go/internal/timeline"
)

// ANSI palette for the semantic colors. Neutral stays unstyled.
var palette = map[task.Color]lipgloss.Color{
	task.ColorInfo:    lipgloss.Color("12"),
	task.ColorDanger:  lipgloss.Color("9"),
	task.ColorWarning: lipgloss.Color("11"),
	task.ColorSuccess: lipgloss.Color("10"),
}

// Painter turns semantic colors into terminal styles.
type Painter struct {
	enabled bool
	styles  map[task.Color]lipgloss.Style
	bold    lipgloss.Style
	faint   lipgloss.Style
}

// NewPainter returns a painter for output written to w. With enabled false
// every method returns its input unchanged.
func NewPainter(w io.Writer, enabled bool) *Painter {
	r := lipgloss.NewRenderer(w)
	if enabled {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	styles := make(map[task.Color]lipgloss.Style, len(palette))
	for c, fg := range palette {
		styles[c] = r.NewStyle().Foreground(fg)
	}
	return &Painter{
		enabled: enabled,
		styles:  styles,
		bold:    r.NewStyle().Bold(true),
		faint:   r.NewStyle().Faint(true),
	}
}

// Enabled reports whether the painter emits escape sequences.
func (p *Painter) Enabled() bool {
	return p != nil && p.enabled
}

// Paint renders s in color c.
func (p *Painter) Paint(c task.Color, s string) string {
	if !p.Enabled() || s == "" {
		return s
	}
	style, ok := p.styles[c]
	if !ok {
		return s
	}
	return style.Render(s)
}

// Bold renders s in bold.
func (p *Painter) Bold(s string) string {
	if !p.Enabled() || s == "" {
		return s
	}
	return p.bold.Render(s)
}

// Faint renders s dimmed.
func (p *Painter) Faint(s string) string {
	if !p.Enabled() || s == "" {
		return s
	}
	return p.faint.Render(s)
}

// Status renders the status word padded to a fixed width, in its color.
func (p *Painter) Status(s task.Status) string {
	return p.Paint(task.ColorOf(s), padRight(string(s), statusWidth))
}

// Chart renders a timeline chart, header included, one painted line per
// row. Runs of cells sharing a color are painted together and trailing
// blanks are dropped.
func (p *Painter) Chart(ch *timeline.Chart) string {
	var b strings.Builder
	b.WriteString(p.Bold(ch.Header()))
	b.WriteString("\n")
	for _, row := range ch.Rows {
		b.WriteString(p.Row(row))
		b.WriteString("\n")
	}
	return b.String()
}

// Row renders one chart row.
func (p *Painter) Row(row []timeline.Cell) string {
	end := len(row)
	for end > 0 && row[end-1].IsEmpty() {
		end--
	}

	var b strings.Builder
	for i := 0; i < end; {
		j := i
		var run strings.Builder
		for j < end && row[j].Color == row[i].Color {
			run.WriteRune(row[j].Glyph)
			j++
		}
		if row[i].Color == "" {
			b.WriteString(run.String())
		} else {
			b.WriteString(p.Paint(row[i].Color, run.String()))
		}
		i = j
	}
	return b.String()
}

const statusWidth = len(task.StatusComplete)

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
