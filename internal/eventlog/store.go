// Package eventlog persists raw litter-box events between fetches so a
// report run always has the full 7-day window available even when the
// robot API only returns recent history.
package eventlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/matthewbaird/litterstats/internal/event"
)

// Store is the interface for writing and reading raw events.
type Store interface {
	// WriteEvents ingests events. Ingestion is idempotent: an event with
	// a (timestamp, kind) pair already in the log is skipped, so
	// re-fetching overlapping history is safe.
	WriteEvents(ctx context.Context, events []event.RawEvent) error

	// QueryWindow returns all events with since <= timestamp <= until,
	// ordered by timestamp ascending.
	QueryWindow(ctx context.Context, since, until time.Time) ([]event.RawEvent, error)
}

// timeLayout is a fixed-width RFC 3339 variant. Fixed width keeps the
// TEXT column's lexicographic order identical to chronological order,
// which the window query and index rely on.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements Store on a plain database/sql handle. The
// event log is a single append-mostly table kept outside any ORM.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLiteStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateTable creates the events table. Run during startup migration.
func (s *SQLiteStore) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id          TEXT NOT NULL,
			occurred_at TEXT NOT NULL,
			kind        TEXT NOT NULL,
			weight      REAL,
			PRIMARY KEY (occurred_at, kind)
		);

		CREATE INDEX IF NOT EXISTS idx_events_kind_time
			ON events (kind, occurred_at);
	`)
	return err
}

// WriteEvents inserts events, ignoring (timestamp, kind) duplicates.
func (s *SQLiteStore) WriteEvents(ctx context.Context, events []event.RawEvent) error {
	if len(events) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO events (id, occurred_at, kind, weight) VALUES ")

	args := make([]interface{}, 0, len(events)*4)
	for i, e := range events {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?, ?, ?)")

		var weight interface{}
		if v, ok := e.WeightValue(); ok {
			weight = v
		}
		args = append(args, e.ID, e.Timestamp.UTC().Format(timeLayout), string(e.Kind), weight)
	}

	b.WriteString(" ON CONFLICT DO NOTHING")
	_, err := s.db.ExecContext(ctx, b.String(), args...)
	if err != nil {
		return fmt.Errorf("writing events: %w", err)
	}
	return nil
}

// QueryWindow returns events inside the inclusive time range.
func (s *SQLiteStore) QueryWindow(ctx context.Context, since, until time.Time) ([]event.RawEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, occurred_at, kind, weight
		FROM events
		WHERE occurred_at >= ? AND occurred_at <= ?
		ORDER BY occurred_at ASC`,
		since.UTC().Format(timeLayout), until.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []event.RawEvent
	for rows.Next() {
		var (
			e      event.RawEvent
			ts     string
			kind   string
			weight sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &ts, &kind, &weight); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Timestamp, err = time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing event timestamp %q: %w", ts, err)
		}
		e.Kind = event.Kind(kind)
		if weight.Valid {
			w := weight.Float64
			e.Weight = &w
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
