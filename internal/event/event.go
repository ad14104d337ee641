// Package event defines the raw litter-box event model shared by the
// fetch client, the event log store, and the stats engine.
package event

import (
	"fmt"
	"time"
)

// Kind identifies what a recorded event represents.
type Kind string

const (
	// KindVisit is a cat entering and using the box, optionally with a
	// weight reading from the bed scale.
	KindVisit Kind = "visit"

	// KindCleanCycle is a completed automatic cleaning cycle.
	KindCleanCycle Kind = "clean_cycle"

	// KindInterruption is a cleaning cycle interrupted by the cat sensor.
	KindInterruption Kind = "interruption"
)

// Valid reports whether k is one of the known event kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindVisit, KindCleanCycle, KindInterruption:
		return true
	}
	return false
}

// RawEvent is one recorded occurrence from the robot's activity history.
// Weight is nil unless the event is a visit with a successful scale
// reading. RawEvents are value types; nothing mutates them after parse.
type RawEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      Kind      `json:"kind"`
	Weight    *float64  `json:"weight,omitempty"`
}

// WeightValue returns the weight reading and whether one is present.
// Zero and negative readings count as missing; the scale reports 0.0
// when it fails to settle.
func (e RawEvent) WeightValue() (float64, bool) {
	if e.Kind != KindVisit || e.Weight == nil || *e.Weight <= 0 {
		return 0, false
	}
	return *e.Weight, true
}

// Validate checks structural invariants on a single event.
func (e RawEvent) Validate() error {
	if e.Timestamp.IsZero() {
		return fmt.Errorf("event %s: zero timestamp", e.ID)
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("event %s: unknown kind %q", e.ID, e.Kind)
	}
	return nil
}

// Key is the identity of an event for deduplication purposes: two events
// with the same timestamp and kind are the same recorded occurrence.
type Key struct {
	Timestamp time.Time
	Kind      Kind
}

// DedupeKey returns the event's deduplication identity. Timestamps are
// normalised to UTC so identical instants compare equal regardless of
// the location attached by the parser.
func (e RawEvent) DedupeKey() Key {
	return Key{Timestamp: e.Timestamp.UTC(), Kind: e.Kind}
}
