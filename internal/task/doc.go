// Package task models a single personal task and the rules that derive its
// lifecycle phase.
//
// A task carries four optional timestamps:
//
//	planned_start, planned_complete   the schedule (both set or both unset)
//	actual_start, actual_complete     what really happened
//
// # Status
//
// The status is never stored as a source of truth. It is derived from the
// timestamps and the current instant, top-down:
//
//  1. actual_complete before now  -> complete
//  2. actual_start before now     -> ongoing
//  3. planned_start before now    -> overdue
//  4. planned_start set           -> planned
//  5. otherwise                   -> backlog
//
// Task caches the last derived value; call UpdateStatus after any edit and
// before reading anything that depends on the status.
//
// # Priority
//
// Phases rank overdue > ongoing > planned > complete > backlog. Inside a
// phase: overdue and planned prefer the earlier planned start, ongoing
// prefers the most recent actual start, complete prefers the most recent
// completion. SortByPriority breaks the remaining ties by collection index
// so the order is total and stable.
//
// # Colors
//
// Each status maps to one semantic color (ColorOf). Painting the color is
// left to the caller.
package task
