package litterbot

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matthewbaird/litterstats/internal/event"
)

// weightPattern extracts the reading from "Pet Weight Recorded: 11.2 lbs".
var weightPattern = regexp.MustCompile(`([\d.]+)\s*lbs`)

// eventNamespace seeds deterministic event IDs so the same activity row
// always parses to the same ID across fetches.
var eventNamespace = uuid.MustParse("9c0a1d6e-5b1f-4c87-9f2e-3b8b6d4a11c2")

// Parse converts raw activity rows into typed events. The API returns
// rows newest first; parsing walks them oldest first so a weight
// reading can attach to the visit it follows.
//
// A visit is emitted once its clean cycle completes. A detection with
// no completed cycle yet (the cat may still be inside, or the robot is
// mid-cycle at fetch time) is dropped; the next fetch will see the
// completed sequence and pick it up.
func Parse(activities []Activity) []event.RawEvent {
	var events []event.RawEvent
	var pending *event.RawEvent

	for i := len(activities) - 1; i >= 0; i-- {
		a := activities[i]
		action := a.Action

		switch {
		case strings.Contains(action, "CAT_DETECTED") || action == "CD":
			v := newEvent(a, event.KindVisit)
			pending = &v

		case strings.Contains(action, "Pet Weight Recorded"):
			if pending == nil {
				continue
			}
			if m := weightPattern.FindStringSubmatch(action); m != nil {
				if w, err := strconv.ParseFloat(m[1], 64); err == nil && w > 0 {
					pending.Weight = &w
				}
			}

		case strings.Contains(action, "CLEAN_CYCLE_COMPLETE") || action == "CCC":
			events = append(events, newEvent(a, event.KindCleanCycle))
			if pending != nil {
				events = append(events, *pending)
				pending = nil
			}

		case strings.Contains(action, "CAT_SENSOR_INTERRUPTED") || action == "CSI":
			events = append(events, newEvent(a, event.KindInterruption))
		}
	}

	return events
}

func newEvent(a Activity, kind event.Kind) event.RawEvent {
	id := uuid.NewSHA1(eventNamespace, []byte(a.Timestamp.UTC().Format("2006-01-02T15:04:05.000000000Z")+"/"+string(kind)))
	return event.RawEvent{
		ID:        id.String(),
		Timestamp: a.Timestamp,
		Kind:      kind,
	}
}
