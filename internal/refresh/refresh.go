// Package refresh orchestrates the pipeline: fetch activity from the
// robot API, ingest it into the event log, run the stats engine over
// the current window, vet the result against the output contract, and
// publish. The engine itself stays pure; everything stateful happens
// here.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/matthewbaird/litterstats/internal/contract"
	"github.com/matthewbaird/litterstats/internal/event"
	"github.com/matthewbaird/litterstats/internal/eventlog"
	"github.com/matthewbaird/litterstats/internal/litterbot"
	"github.com/matthewbaird/litterstats/internal/publish"
	"github.com/matthewbaird/litterstats/internal/stats"
)

// Source produces fresh raw events plus the robot's display name.
type Source interface {
	Fetch(ctx context.Context) (robotName string, events []event.RawEvent, err error)
}

// APISource fetches from the Litter-Robot cloud API, using the first
// robot on the account (single-device scope).
type APISource struct {
	Client   *litterbot.Client
	Username string
	Password string
	Limit    int
}

// Fetch logs in, picks the first robot, and parses its activity history.
func (s *APISource) Fetch(ctx context.Context) (string, []event.RawEvent, error) {
	if err := s.Client.Login(ctx, s.Username, s.Password); err != nil {
		return "", nil, err
	}
	robots, err := s.Client.Robots(ctx)
	if err != nil {
		return "", nil, err
	}
	if len(robots) == 0 {
		return "", nil, fmt.Errorf("no robots found on this account")
	}
	robot := robots[0]
	activities, err := s.Client.ActivityHistory(ctx, robot.ID, s.Limit)
	if err != nil {
		return "", nil, err
	}
	return robot.Name, litterbot.Parse(activities), nil
}

// Refresher runs the fetch → compute → publish pipeline.
type Refresher struct {
	Source    Source
	Store     eventlog.Store
	Publisher *publish.Publisher
	CatName   string
	Loc       *time.Location

	// Notify, when set, receives every newly published report. The
	// server wires the websocket hub in here.
	Notify func(stats.Report)

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// RunOnce executes one full pipeline pass. It returns the generated
// report and whether the published artifact changed. ErrEmptyWindow
// propagates: a window with no data produces nothing rather than a
// zeroed report.
func (r *Refresher) RunOnce(ctx context.Context) (stats.Report, bool, error) {
	runID := uuid.NewString()
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}

	robotName, events, err := r.Source.Fetch(ctx)
	if err != nil {
		return stats.Report{}, false, fmt.Errorf("fetch (run %s): %w", runID, err)
	}
	log.Printf("refresh: run %s fetched %d events from %q", runID, len(events), robotName)

	if err := r.Store.WriteEvents(ctx, events); err != nil {
		return stats.Report{}, false, fmt.Errorf("ingest (run %s): %w", runID, err)
	}

	w := stats.WindowEnding(now, r.Loc)
	windowEvents, err := r.Store.QueryWindow(ctx, w.Start, w.End)
	if err != nil {
		return stats.Report{}, false, fmt.Errorf("window query (run %s): %w", runID, err)
	}

	report, err := stats.Generate(windowEvents, stats.Identity{
		CatName:   r.CatName,
		RobotName: robotName,
	}, now, r.Loc)
	if err != nil {
		return stats.Report{}, false, err
	}

	data, err := publish.Marshal(report)
	if err != nil {
		return stats.Report{}, false, err
	}
	if err := contract.Validate(data); err != nil {
		return stats.Report{}, false, err
	}

	changed, err := r.Publisher.Write(report)
	if err != nil {
		return stats.Report{}, false, fmt.Errorf("publish (run %s): %w", runID, err)
	}
	if changed && r.Notify != nil {
		r.Notify(report)
	}
	return report, changed, nil
}

// Run executes RunOnce immediately and then on every tick until the
// context is cancelled. Failures are logged and the loop continues;
// the next tick is the retry.
func (r *Refresher) Run(ctx context.Context, every time.Duration) {
	r.runAndLog(ctx)

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.runAndLog(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Refresher) runAndLog(ctx context.Context) {
	_, changed, err := r.RunOnce(ctx)
	switch {
	case errors.Is(err, stats.ErrEmptyWindow):
		log.Printf("refresh: no data in window yet, skipping publish")
	case err != nil:
		log.Printf("refresh: %v", err)
	case changed:
		log.Printf("refresh: published updated %s", publish.DataFile)
	default:
		log.Printf("refresh: report unchanged, skipped publish")
	}
}
