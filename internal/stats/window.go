// Package stats is the pure computation core: it turns a normalized
// litter-box event log into the derived report consumed by the renderers.
// Nothing in this package performs I/O or reads the wall clock; the
// reference instant is injected by the caller.
package stats

import "time"

// windowDays is the length of the reporting window in calendar days.
const windowDays = 7

// Window is the fixed reporting period: the last 7 calendar days up to
// and including the reference day, in the log's local timezone. Both
// bounds are inclusive.
type Window struct {
	Start time.Time // midnight at the start of the first day
	End   time.Time // last nanosecond of the reference day
	Loc   *time.Location
}

// WindowEnding computes the reporting window for the given reference
// instant in loc. The reference day is the last day of the window.
func WindowEnding(ref time.Time, loc *time.Location) Window {
	local := ref.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{
		Start: dayStart.AddDate(0, 0, -(windowDays - 1)),
		End:   dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond),
		Loc:   loc,
	}
}

// Contains reports whether t falls inside the window (inclusive bounds).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the number of calendar days in the window. Always >= 1.
func (w Window) Days() int {
	return windowDays
}

// EachDay calls fn once per calendar day in the window, in order,
// with the local midnight of that day.
func (w Window) EachDay(fn func(day time.Time)) {
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// DisplayRange renders the window as e.g. "Dec 27 - Jan 03, 2026".
func (w Window) DisplayRange() string {
	return w.Start.Format("Jan 02") + " - " + w.End.Format("Jan 02, 2006")
}
