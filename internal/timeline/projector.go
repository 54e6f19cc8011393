package timeline

import "time"

const (
	// StartHour is the hour of day at column 0.
	StartHour = 8
	// EndHour is the last labelled hour.
	EndHour = 20
	// Tick is the span of one column.
	Tick = 10 * time.Minute
	// Width is the number of columns in a chart row.
	Width = int((EndHour-StartHour)*time.Hour/Tick) + 1
)

// Column projects ts onto the time-of-day axis of its own calendar day:
// floor((ts - 08:00) / 10 minutes). The result is unbounded; times before
// 08:00 are negative and times after 20:00 exceed the chart.
func Column(ts time.Time) int {
	y, m, d := ts.Date()
	origin := time.Date(y, m, d, StartHour, 0, 0, 0, ts.Location())
	offset := ts.Sub(origin)
	col := offset / Tick
	if offset < 0 && offset%Tick != 0 {
		col--
	}
	return int(col)
}

// clampColumn keeps col inside the drawable range [1, Width-2]. Column 0
// is reserved for the letter of an interval starting at column 1.
func clampColumn(col int) int {
	if col < 1 {
		return 1
	}
	if col > Width-2 {
		return Width - 2
	}
	return col
}
