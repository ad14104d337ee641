package stats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/matthewbaird/litterstats/internal/event"
)

// ErrEmptyWindow is returned when no events fall inside the reporting
// window. Callers must surface an explicit "no data yet" state instead
// of publishing a report full of misleading zeros.
var ErrEmptyWindow = errors.New("stats: no events in reporting window")

// ValidationError reports structurally invalid input. The engine never
// silently drops or repairs malformed events; the only normalisation it
// performs is the documented zero/negative-weight rule.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "stats: invalid event log: " + e.Reason
}

// NormalizedLog is an ordered event sequence restricted to a window.
// Events are non-decreasing by timestamp with no duplicate
// (timestamp, kind) pairs; weights are present only when a real reading
// exists.
type NormalizedLog struct {
	Window Window
	Events []event.RawEvent
}

// Normalize validates raw events, restricts them to the window, and
// sorts them by timestamp. The sort is stable, so events sharing a
// timestamp keep their original insertion order and two runs over the
// same input produce identical logs.
func Normalize(events []event.RawEvent, w Window) (NormalizedLog, error) {
	seen := make(map[event.Key]struct{}, len(events))
	kept := make([]event.RawEvent, 0, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return NormalizedLog{}, &ValidationError{Reason: err.Error()}
		}
		if !w.Contains(e.Timestamp) {
			continue
		}
		key := e.DedupeKey()
		if _, dup := seen[key]; dup {
			return NormalizedLog{}, &ValidationError{
				Reason: fmt.Sprintf("duplicate %s event at %s", e.Kind, e.Timestamp.Format("2006-01-02T15:04:05Z07:00")),
			}
		}
		seen[key] = struct{}{}

		// Zero and negative weights are failed scale reads, not data.
		if e.Weight != nil && *e.Weight <= 0 {
			e.Weight = nil
		}
		kept = append(kept, e)
	}

	if len(kept) == 0 {
		return NormalizedLog{}, ErrEmptyWindow
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.Before(kept[j].Timestamp)
	})

	return NormalizedLog{Window: w, Events: kept}, nil
}

// Visits returns the visit-kind events of the log, preserving order.
func (l NormalizedLog) Visits() []event.RawEvent {
	var visits []event.RawEvent
	for _, e := range l.Events {
		if e.Kind == event.KindVisit {
			visits = append(visits, e)
		}
	}
	return visits
}

// CountKind returns the number of events of the given kind.
func (l NormalizedLog) CountKind(k event.Kind) int {
	n := 0
	for _, e := range l.Events {
		if e.Kind == k {
			n++
		}
	}
	return n
}
