package stats

import (
	"fmt"
	"math"
	"time"
)

// GapUnavailable is the sentinel reported when fewer than two visits
// exist in the window. A literal zero duration would read as "the cat
// went twice at once", so it is never emitted.
const GapUnavailable = "N/A"

// GapSummary describes the spread of time between consecutive visits.
// Gaps are computed strictly between visit events; clean cycles and
// interruptions neither break nor create gaps, and only where both
// endpoints lie inside the window.
type GapSummary struct {
	Longest  time.Duration
	Shortest time.Duration
	Count    int
	StdDev   time.Duration
	Ok       bool // false when fewer than 2 visits exist
}

// LongestDisplay renders the longest gap, or the unavailable sentinel.
func (g GapSummary) LongestDisplay() string {
	if !g.Ok {
		return GapUnavailable
	}
	return formatGap(g.Longest)
}

// ShortestDisplay renders the shortest gap, or the unavailable sentinel.
func (g GapSummary) ShortestDisplay() string {
	if !g.Ok {
		return GapUnavailable
	}
	return formatGap(g.Shortest)
}

// AnalyzeGaps computes inter-visit gaps over the normalized log.
func AnalyzeGaps(log NormalizedLog) GapSummary {
	visits := log.Visits()
	if len(visits) < 2 {
		return GapSummary{}
	}

	gaps := make([]time.Duration, 0, len(visits)-1)
	for i := 1; i < len(visits); i++ {
		gaps = append(gaps, visits[i].Timestamp.Sub(visits[i-1].Timestamp))
	}

	s := GapSummary{Longest: gaps[0], Shortest: gaps[0], Count: len(gaps), Ok: true}
	var sum float64
	for _, g := range gaps {
		if g > s.Longest {
			s.Longest = g
		}
		if g < s.Shortest {
			s.Shortest = g
		}
		sum += g.Seconds()
	}

	avg := sum / float64(len(gaps))
	var variance float64
	for _, g := range gaps {
		d := g.Seconds() - avg
		variance += d * d
	}
	variance /= float64(len(gaps))
	s.StdDev = time.Duration(math.Sqrt(variance) * float64(time.Second))
	return s
}

// formatGap renders a duration as "3h 12m", or "12m" under an hour.
func formatGap(d time.Duration) string {
	total := int(d / time.Minute)
	hours, minutes := total/60, total%60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
