package eventlog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matthewbaird/litterstats/internal/event"
)

// MemoryStore implements Store using an in-memory map.
// Intended for demos and testing, no SQLite required.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[event.Key]event.RawEvent
}

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[event.Key]event.RawEvent)}
}

func (s *MemoryStore) WriteEvents(_ context.Context, events []event.RawEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range events {
		key := e.DedupeKey()
		if _, exists := s.events[key]; exists {
			continue
		}
		s.events[key] = e
	}
	return nil
}

func (s *MemoryStore) QueryWindow(_ context.Context, since, until time.Time) ([]event.RawEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []event.RawEvent
	for _, e := range s.events {
		if e.Timestamp.Before(since) || e.Timestamp.After(until) {
			continue
		}
		matched = append(matched, e)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Kind < matched[j].Kind
		}
		return matched[i].Timestamp.Before(matched[j].Timestamp)
	})
	return matched, nil
}
