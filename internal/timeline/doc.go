// Package timeline lays out one calendar day of task activity as a
// fixed-width character chart.
//
// The horizontal axis covers 08:00 to 20:00 in ten-minute columns (six
// columns per hour, 73 columns in total). Each task contributes up to two
// intervals: its planned schedule drawn with '-' and its actual execution
// drawn with '='. Intervals are packed first-fit into rows in the order
// the tasks are given, and each interval is labelled with the task's
// letter in the column just left of its start.
//
//	Fri 2026-10-16
//	8     9     10    11    12    13    14    15    16    17    18    19    20
//	|-----|-----|-----|-----|-----|-----|v----|-----|-----|-----|-----|-----|
//	     a------     c====================
//	        b==========================   |
//	|-----|-----|-----|-----|-----|-----|^----|-----|-----|-----|-----|-----|
//	8     9     10    11    12    13    14    15    16    17    18    19    20
//
// The chart carries semantic colors only; painting them is up to the
// caller.
package timeline
