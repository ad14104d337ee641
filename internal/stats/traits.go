package stats

import (
	"math"
	"time"
)

// Trait is a qualitative behavior tag attached to the report.
type Trait string

const (
	TraitEarlyBird       Trait = "Early Bird"
	TraitNightOwl        Trait = "Night Owl"
	TraitCreatureOfHabit Trait = "Creature of Habit"
	TraitChaoticPooper   Trait = "Chaotic Pooper"
	TraitWeekdayRegular  Trait = "Weekday Regular"
	TraitWeekendWarrior  Trait = "Weekend Warrior"
)

// Classification thresholds. Tuned against real traces; treat as part
// of the output contract since renderers display the trait strings.
const (
	earlyBirdBefore   = 9             // peak hour strictly before
	nightOwlFrom      = 21            // peak hour at or after
	habitMaxVariation = 0.25          // per-day count stddev / mean
	chaoticGapStdDev  = 6 * time.Hour // gap spread above this is chaos
	weekPartMargin    = 1.3           // weekday/weekend rate ratio
)

// Aggregates is the shared input every classifier rule reads. It is
// assembled once from the upstream analyzers; rules never recompute
// from the raw log.
type Aggregates struct {
	Daily        []DailyCount
	Peak         *PeakHour
	VisitsPerDay float64
	Gaps         GapSummary
}

// rule pairs a trait with its independent predicate.
type rule struct {
	trait Trait
	holds func(Aggregates) bool
}

// traitRules is evaluated in declaration order; the report lists traits
// in this order regardless of which aggregate triggered first. Rules
// are independent: several may fire, or none.
var traitRules = []rule{
	{TraitEarlyBird, func(a Aggregates) bool {
		return a.Peak != nil && a.Peak.Hour < earlyBirdBefore
	}},
	{TraitNightOwl, func(a Aggregates) bool {
		return a.Peak != nil && a.Peak.Hour >= nightOwlFrom
	}},
	{TraitCreatureOfHabit, func(a Aggregates) bool {
		mean, std := dailyCountStats(a.Daily)
		return mean > 0 && std/mean < habitMaxVariation
	}},
	{TraitChaoticPooper, func(a Aggregates) bool {
		return a.Gaps.Ok && a.Gaps.StdDev > chaoticGapStdDev
	}},
	{TraitWeekdayRegular, func(a Aggregates) bool {
		weekday, weekend := weekPartRates(a.Daily)
		return weekday > weekend*weekPartMargin
	}},
	{TraitWeekendWarrior, func(a Aggregates) bool {
		weekday, weekend := weekPartRates(a.Daily)
		return weekend > weekday*weekPartMargin
	}},
}

// Classify evaluates the rule table against the aggregates. The result
// is duplicate-free and ordered by rule declaration, which keeps output
// stable across runs.
func Classify(a Aggregates) []Trait {
	var traits []Trait
	for _, r := range traitRules {
		if r.holds(a) {
			traits = append(traits, r.trait)
		}
	}
	return traits
}

// dailyCountStats returns the mean and population standard deviation of
// per-day visit counts, zero-filled days included.
func dailyCountStats(daily []DailyCount) (mean, std float64) {
	if len(daily) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, d := range daily {
		sum += float64(d.Count)
	}
	mean = sum / float64(len(daily))

	var variance float64
	for _, d := range daily {
		diff := float64(d.Count) - mean
		variance += diff * diff
	}
	variance /= float64(len(daily))
	return mean, math.Sqrt(variance)
}

// weekPartRates returns mean visits per weekday (Mon-Fri) and per
// weekend day (Sat-Sun). A part with no days in the window rates zero.
func weekPartRates(daily []DailyCount) (weekday, weekend float64) {
	var wdSum, weSum, wdDays, weDays float64
	for _, d := range daily {
		switch d.Date.Weekday() {
		case time.Saturday, time.Sunday:
			weSum += float64(d.Count)
			weDays++
		default:
			wdSum += float64(d.Count)
			wdDays++
		}
	}
	if wdDays > 0 {
		weekday = wdSum / wdDays
	}
	if weDays > 0 {
		weekend = weSum / weDays
	}
	return weekday, weekend
}
