package contract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/litterstats/internal/contract"
	"github.com/matthewbaird/litterstats/internal/event"
	"github.com/matthewbaird/litterstats/internal/publish"
	"github.com/matthewbaird/litterstats/internal/stats"
)

func generatedReport(t *testing.T) []byte {
	t.Helper()

	ref := time.Date(2026, time.January, 3, 18, 0, 0, 0, time.UTC)
	base := time.Date(2026, time.January, 1, 7, 0, 0, 0, time.UTC)
	w := 11.2
	events := []event.RawEvent{
		{ID: "v1", Timestamp: base, Kind: event.KindVisit, Weight: &w},
		{ID: "v2", Timestamp: base.Add(6 * time.Hour), Kind: event.KindVisit},
		{ID: "c1", Timestamp: base.Add(10 * time.Minute), Kind: event.KindCleanCycle},
	}

	report, err := stats.Generate(events, stats.Identity{CatName: "Miso", RobotName: "Robot"}, ref, time.UTC)
	require.NoError(t, err)

	data, err := publish.Marshal(report)
	require.NoError(t, err)
	return data
}

func TestValidate_GeneratedReportPasses(t *testing.T) {
	assert.NoError(t, contract.Validate(generatedReport(t)))
}

func TestValidate_MissingFieldFails(t *testing.T) {
	err := contract.Validate([]byte(`{"cat_name": "Miso"}`))
	assert.Error(t, err)
}

func TestValidate_WrongTypeFails(t *testing.T) {
	// total_visits as a string violates the contract.
	err := contract.Validate([]byte(`{
		"cat_name": "Miso", "robot_name": "R", "generated_at": "2026-01-03T18:00:00Z",
		"date_range": {"start": "Dec 28", "end": "Jan 03, 2026", "display": "Dec 28 - Jan 03, 2026"},
		"personality_traits": [], "total_visits": "twenty-one", "visits_per_day": 3.0,
		"chart_data": [], "weight_history": [],
		"timing": {"longest_gap": "N/A", "shortest_gap": "N/A"},
		"weight": null, "peak_hour": null, "busiest_date": null,
		"robot_stats": {"clean_cycles": 0, "interruptions": 0},
		"output": {"oz": 0, "lbs": 0}
	}`))
	assert.Error(t, err)
}

func TestValidate_NullSentinelsAllowed(t *testing.T) {
	err := contract.Validate([]byte(`{
		"cat_name": "Kitty", "robot_name": "R", "generated_at": "2026-01-03T18:00:00Z",
		"date_range": {"start": "Dec 28", "end": "Jan 03, 2026", "display": "Dec 28 - Jan 03, 2026"},
		"personality_traits": [], "total_visits": 0, "visits_per_day": 0,
		"chart_data": [], "weight_history": [],
		"timing": {"longest_gap": "N/A", "shortest_gap": "N/A"},
		"weight": null, "peak_hour": null, "busiest_date": null,
		"robot_stats": {"clean_cycles": 1, "interruptions": 0},
		"output": {"oz": 0, "lbs": 0}
	}`))
	assert.NoError(t, err)
}

func TestValidate_MalformedJSONFails(t *testing.T) {
	assert.Error(t, contract.Validate([]byte(`{not json`)))
}
