package stats

import (
	"math"
	"time"

	"github.com/matthewbaird/litterstats/internal/event"
)

// ouncesPerVisit is the rough litter clump mass used for the waste
// estimate on the report.
const ouncesPerVisit = 2.5

// DefaultCatName is used when the caller does not supply a cat name.
const DefaultCatName = "Kitty"

// Identity names the cat and robot a report describes.
type Identity struct {
	CatName   string
	RobotName string
}

// DateRange is the human-readable description of the reporting window.
type DateRange struct {
	Start   string `json:"start"`   // "Dec 27"
	End     string `json:"end"`     // "Jan 03, 2026"
	Display string `json:"display"` // "Dec 27 - Jan 03, 2026"
}

// Timing carries the formatted gap descriptors.
type Timing struct {
	LongestGap  string `json:"longest_gap"`
	ShortestGap string `json:"shortest_gap"`
}

// RobotStats are the robot-level counters for the window.
type RobotStats struct {
	CleanCycles   int `json:"clean_cycles"`
	Interruptions int `json:"interruptions"`
}

// WasteEstimate is the tongue-in-cheek output tally shown on the site.
type WasteEstimate struct {
	Oz  float64 `json:"oz"`
	Lbs float64 `json:"lbs"`
}

// Report is the single output artifact of the engine. Field names and
// nesting are a compatibility contract consumed by two independent
// renderers; see internal/contract for the schema. A Report is built
// once per run and never mutated afterwards.
type Report struct {
	CatName           string         `json:"cat_name"`
	RobotName         string         `json:"robot_name"`
	GeneratedAt       time.Time      `json:"generated_at"`
	DateRange         DateRange      `json:"date_range"`
	PersonalityTraits []Trait        `json:"personality_traits"`
	TotalVisits       int            `json:"total_visits"`
	VisitsPerDay      float64        `json:"visits_per_day"`
	ChartData         []DailyCount   `json:"chart_data"`
	WeightHistory     []WeightSample `json:"weight_history"`
	Timing            Timing         `json:"timing"`
	Weight            *WeightSummary `json:"weight"`
	PeakHour          *PeakHour      `json:"peak_hour"`
	BusiestDate       *BusiestDate   `json:"busiest_date"`
	RobotStats        RobotStats     `json:"robot_stats"`
	Output            WasteEstimate  `json:"output"`
}

// Generate runs the whole engine: normalize the raw events into the
// 7-day window ending at ref, run the independent analyzers, classify,
// and assemble the report. Pure: ref is the only notion of "now".
//
// Returns ErrEmptyWindow when no events fall in the window and a
// *ValidationError for structurally invalid input; there is no partial
// report on failure.
func Generate(events []event.RawEvent, id Identity, ref time.Time, loc *time.Location) (Report, error) {
	w := WindowEnding(ref, loc)
	log, err := Normalize(events, w)
	if err != nil {
		return Report{}, err
	}

	visits := AggregateVisits(log)
	samples, weight := AnalyzeWeight(log)
	gaps := AnalyzeGaps(log)
	traits := Classify(Aggregates{
		Daily:        visits.Daily,
		Peak:         visits.Peak,
		VisitsPerDay: visits.VisitsPerDay,
		Gaps:         gaps,
	})

	return assemble(log, id, ref, visits, samples, weight, gaps, traits), nil
}

// assemble composes the analyzer outputs into the immutable Report. No
// computation beyond formatting happens here.
func assemble(
	log NormalizedLog,
	id Identity,
	ref time.Time,
	visits VisitSummary,
	samples []WeightSample,
	weight *WeightSummary,
	gaps GapSummary,
	traits []Trait,
) Report {
	if id.CatName == "" {
		id.CatName = DefaultCatName
	}
	if traits == nil {
		traits = []Trait{}
	}
	if samples == nil {
		samples = []WeightSample{}
	}

	w := log.Window
	// Halves round to even: a 52.5 oz week reads 52, not 53.
	oz := math.RoundToEven(float64(visits.TotalVisits) * ouncesPerVisit)

	return Report{
		CatName:     id.CatName,
		RobotName:   id.RobotName,
		GeneratedAt: ref.In(w.Loc),
		DateRange: DateRange{
			Start:   w.Start.Format("Jan 02"),
			End:     w.End.Format("Jan 02, 2006"),
			Display: w.DisplayRange(),
		},
		PersonalityTraits: traits,
		TotalVisits:       visits.TotalVisits,
		VisitsPerDay:      visits.VisitsPerDay,
		ChartData:         visits.Daily,
		WeightHistory:     samples,
		Timing: Timing{
			LongestGap:  gaps.LongestDisplay(),
			ShortestGap: gaps.ShortestDisplay(),
		},
		Weight:      weight,
		PeakHour:    visits.Peak,
		BusiestDate: visits.Busiest,
		RobotStats: RobotStats{
			CleanCycles:   log.CountKind(event.KindCleanCycle),
			Interruptions: log.CountKind(event.KindInterruption),
		},
		Output: WasteEstimate{
			Oz:  oz,
			Lbs: math.RoundToEven(oz/16*10) / 10,
		},
	}
}
