package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/arenta-go/internal/task"
)

// MaxTasks is the number of letters available to label tasks.
const MaxTasks = 26

const (
	glyphEmpty   = ' '
	glyphPlanned = '-'
	glyphActual  = '='
	glyphCursor  = '|'
	glyphTop     = 'v'
	glyphBottom  = '^'
)

// ErrCapacity is returned when more tasks are given than there are letters.
var ErrCapacity = errors.New("too many tasks for timeline")

// CursorColor is the semantic color of the "now" cursor.
const CursorColor = task.ColorDanger

// Cell is one character of the chart. An empty Color means uncolored.
type Cell struct {
	Glyph rune
	Color task.Color
}

// IsEmpty reports whether nothing has been drawn in the cell.
func (c Cell) IsEmpty() bool {
	return c.Glyph == glyphEmpty
}

func blankRow() []Cell {
	row := make([]Cell, Width)
	for i := range row {
		row[i] = Cell{Glyph: glyphEmpty}
	}
	return row
}

// Letter returns the label for the task at position i of the visible list.
func Letter(i int) rune {
	return rune('a' + i)
}

// Canvas packs task intervals for a single date into rows.
type Canvas struct {
	date   time.Time
	today  bool
	nowCol int
	rows   [][]Cell
}

// NewCanvas creates an empty canvas for date. The now cursor is drawn only
// when date is the calendar date of now.
func NewCanvas(date, now time.Time) *Canvas {
	return &Canvas{
		date:   date,
		today:  task.SameDate(date, now),
		nowCol: Column(now),
	}
}

// AddTask queues the planned and actual intervals of t that fall on the
// canvas date. Deleted tasks are skipped. The cached status of t picks the
// color, so refresh it first.
func (c *Canvas) AddTask(letter rune, t *task.Task) {
	if t.Deleted {
		return
	}
	color := t.Color()

	if t.PlannedStart != nil && t.PlannedComplete != nil &&
		c.onDate(*t.PlannedStart) && c.onDate(*t.PlannedComplete) {
		c.Place(Column(*t.PlannedStart), Column(*t.PlannedComplete), letter, glyphPlanned, color)
	}

	switch {
	case t.ActualStart != nil && c.onDate(*t.ActualStart):
		end := Width - 2
		if t.ActualComplete != nil && c.onDate(*t.ActualComplete) {
			end = Column(*t.ActualComplete)
		} else if c.today {
			end = c.nowCol
		}
		c.Place(Column(*t.ActualStart), end, letter, glyphActual, color)
	case t.ActualComplete != nil && c.onDate(*t.ActualComplete):
		// Started on an earlier day.
		c.Place(1, Column(*t.ActualComplete), letter, glyphActual, color)
	}
}

func (c *Canvas) onDate(ts time.Time) bool {
	return task.SameDate(ts, c.date)
}

// Place draws glyph over the columns [start, end] in the first row where
// those columns and the letter column before them are all empty, adding a
// row when none fits. Columns are clamped to the drawable range and an end
// before its start collapses onto the start. It returns the row used.
func (c *Canvas) Place(start, end int, letter, glyph rune, color task.Color) int {
	start = clampColumn(start)
	end = clampColumn(end)
	if end < start {
		end = start
	}

	row := -1
	for i := range c.rows {
		if c.fits(i, start, end) {
			row = i
			break
		}
	}
	if row < 0 {
		c.rows = append(c.rows, blankRow())
		row = len(c.rows) - 1
	}

	for col := start; col <= end; col++ {
		c.rows[row][col] = Cell{Glyph: glyph, Color: color}
	}
	c.rows[row][start-1] = Cell{Glyph: letter, Color: color}
	return row
}

func (c *Canvas) fits(row, start, end int) bool {
	for col := start - 1; col <= end; col++ {
		if !c.rows[row][col].IsEmpty() {
			return false
		}
	}
	return true
}

// Rows returns the number of task rows placed so far.
func (c *Canvas) Rows() int {
	return len(c.rows)
}

// Chart finishes the layout: hour scales above and below the task rows and,
// for today, the now cursor.
func (c *Canvas) Chart() *Chart {
	labels := scaleLabels()
	ticks := scaleTicks()

	rows := make([][]Cell, 0, len(c.rows)+4)
	rows = append(rows, labels, ticks)
	for _, r := range c.rows {
		rows = append(rows, append([]Cell(nil), r...))
	}
	rows = append(rows, scaleTicks(), scaleLabels())

	chart := &Chart{Date: c.date, Rows: rows}
	if c.today {
		chart.drawCursor(c.nowCol)
	}
	return chart
}

// Render lays out tasks for date. Letters follow the order of tasks.
func Render(tasks []*task.Task, date, now time.Time) (*Chart, error) {
	if len(tasks) > MaxTasks {
		return nil, fmt.Errorf("%w: %d tasks, at most %d", ErrCapacity, len(tasks), MaxTasks)
	}
	canvas := NewCanvas(date, now)
	for i, t := range tasks {
		canvas.AddTask(Letter(i), t)
	}
	return canvas.Chart(), nil
}

func scaleLabels() []Cell {
	row := blankRow()
	colsPerHour := int(time.Hour / Tick)
	for h := StartHour; h <= EndHour; h++ {
		col := (h - StartHour) * colsPerHour
		for i, r := range strconv.Itoa(h) {
			if col+i >= len(row) {
				row = append(row, Cell{Glyph: glyphEmpty})
			}
			row[col+i] = Cell{Glyph: r}
		}
	}
	return row
}

func scaleTicks() []Cell {
	row := blankRow()
	colsPerHour := int(time.Hour / Tick)
	for col := range row {
		if col%colsPerHour == 0 {
			row[col] = Cell{Glyph: '|'}
		} else {
			row[col] = Cell{Glyph: '-'}
		}
	}
	return row
}

// Chart is a finished timeline: two scale rows, the task rows, and two
// scale rows again.
type Chart struct {
	Date time.Time
	Rows [][]Cell
}

func (ch *Chart) drawCursor(col int) {
	if col < 0 {
		col = 0
	}
	if col > Width-1 {
		col = Width - 1
	}
	top, bottom := 1, len(ch.Rows)-2
	ch.Rows[top][col] = Cell{Glyph: glyphTop, Color: CursorColor}
	ch.Rows[bottom][col] = Cell{Glyph: glyphBottom, Color: CursorColor}
	for r := top + 1; r < bottom; r++ {
		if ch.Rows[r][col].IsEmpty() {
			ch.Rows[r][col] = Cell{Glyph: glyphCursor, Color: CursorColor}
		}
	}
}

// Header is the date line printed above the grid.
func (ch *Chart) Header() string {
	return ch.Date.Format("Mon 2006-01-02")
}

// TaskRows returns the rows between the scales.
func (ch *Chart) TaskRows() [][]Cell {
	return ch.Rows[2 : len(ch.Rows)-2]
}

// String renders the chart without colors, trailing blanks trimmed.
func (ch *Chart) String() string {
	var b strings.Builder
	b.WriteString(ch.Header())
	b.WriteString("\n")
	for _, row := range ch.Rows {
		b.WriteString(RowText(row))
		b.WriteString("\n")
	}
	return b.String()
}

// RowText returns the glyphs of row, trailing blanks trimmed.
func RowText(row []Cell) string {
	var b strings.Builder
	for _, cell := range row {
		b.WriteRune(cell.Glyph)
	}
	return strings.TrimRight(b.String(), " ")
}
