package refresh

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matthewbaird/litterstats/internal/event"
	"github.com/matthewbaird/litterstats/internal/eventlog"
	"github.com/matthewbaird/litterstats/internal/publish"
	"github.com/matthewbaird/litterstats/internal/stats"
)

var testRef = time.Date(2026, time.January, 3, 18, 0, 0, 0, time.UTC)

type fakeSource struct {
	robot  string
	events []event.RawEvent
	calls  int
}

func (s *fakeSource) Fetch(context.Context) (string, []event.RawEvent, error) {
	s.calls++
	return s.robot, s.events, nil
}

func weekEvents() []event.RawEvent {
	var events []event.RawEvent
	day := time.Date(2025, time.December, 28, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		d := day.AddDate(0, 0, i)
		for _, h := range []int{7, 19} {
			events = append(events, event.RawEvent{
				ID:        d.Format("01-02") + "-" + string(rune('a'+h)),
				Timestamp: d.Add(time.Duration(h) * time.Hour),
				Kind:      event.KindVisit,
			})
		}
	}
	return events
}

func newTestRefresher(t *testing.T, src Source) (*Refresher, string) {
	t.Helper()
	dir := t.TempDir()
	return &Refresher{
		Source:    src,
		Store:     eventlog.NewMemoryStore(),
		Publisher: publish.New(dir),
		CatName:   "Miso",
		Loc:       time.UTC,
		Now:       func() time.Time { return testRef },
	}, dir
}

func TestRunOnce_PublishesReport(t *testing.T) {
	src := &fakeSource{robot: "Upstairs Robot", events: weekEvents()}
	r, dir := newTestRefresher(t, src)

	var notified []stats.Report
	r.Notify = func(rep stats.Report) { notified = append(notified, rep) }

	report, changed, err := r.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if !changed {
		t.Error("first run should publish")
	}
	if report.TotalVisits != 14 {
		t.Errorf("total visits = %d, want 14", report.TotalVisits)
	}
	if report.RobotName != "Upstairs Robot" {
		t.Errorf("robot name = %q", report.RobotName)
	}
	if report.CatName != "Miso" {
		t.Errorf("cat name = %q", report.CatName)
	}
	if len(notified) != 1 {
		t.Errorf("notify calls = %d, want 1", len(notified))
	}

	if _, err := os.Stat(filepath.Join(dir, publish.DataFile)); err != nil {
		t.Errorf("artifact not written: %v", err)
	}
}

func TestRunOnce_SecondRunUnchanged(t *testing.T) {
	src := &fakeSource{robot: "Robot", events: weekEvents()}
	r, _ := newTestRefresher(t, src)

	notifies := 0
	r.Notify = func(stats.Report) { notifies++ }

	if _, _, err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("first RunOnce: %v", err)
	}
	_, changed, err := r.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second RunOnce: %v", err)
	}
	if changed {
		t.Error("identical data should not republish")
	}
	if notifies != 1 {
		t.Errorf("notify calls = %d, want 1 (no notify on unchanged)", notifies)
	}
	if src.calls != 2 {
		t.Errorf("fetch calls = %d, want 2", src.calls)
	}
}

func TestRunOnce_EmptyWindowPropagates(t *testing.T) {
	src := &fakeSource{robot: "Robot"}
	r, dir := newTestRefresher(t, src)

	_, _, err := r.RunOnce(context.Background())
	if err != stats.ErrEmptyWindow {
		t.Fatalf("err = %v, want ErrEmptyWindow", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, publish.DataFile)); !os.IsNotExist(statErr) {
		t.Error("no artifact should be written for an empty window")
	}
}

func TestRunOnce_AccumulatesAcrossFetches(t *testing.T) {
	// The store retains earlier fetches; a later fetch returning only
	// recent rows still yields the full window.
	all := weekEvents()
	src := &fakeSource{robot: "Robot", events: all[:7]}
	r, _ := newTestRefresher(t, src)

	if _, _, err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("first RunOnce: %v", err)
	}

	src.events = all[7:]
	report, _, err := r.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("second RunOnce: %v", err)
	}
	if report.TotalVisits != 14 {
		t.Errorf("total visits = %d, want 14 (store should accumulate)", report.TotalVisits)
	}
}
