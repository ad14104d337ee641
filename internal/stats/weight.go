package stats

import "time"

// Trend classifies the direction of weight change across the window.
type Trend string

const (
	TrendGaining Trend = "gaining"
	TrendLosing  Trend = "losing"
	TrendStable  Trend = "stable"
)

// trendThreshold is the minimum half-to-half mean difference (in weight
// units) before a trend counts as gaining or losing.
const trendThreshold = 0.1

// WeightSample is the per-day weight point for the trend chart. When a
// day has multiple readings their mean is used, so a single noisy read
// cannot dominate the line.
type WeightSample struct {
	Display string  `json:"display"` // "12/27"
	Weight  float64 `json:"weight"`
}

// WeightSummary holds descriptive statistics over all individual weight
// readings in the window. Average/min/max deliberately use raw readings
// rather than the per-day samples to avoid double smoothing.
type WeightSummary struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Trend   Trend   `json:"trend"`
	Change  float64 `json:"change"`
}

// AnalyzeWeight computes the per-day sample series and the weight
// summary. With zero readings in the window it returns (nil, nil): the
// summary is reported as an explicit unavailable sentinel, never a
// fabricated zero trend.
func AnalyzeWeight(log NormalizedLog) ([]WeightSample, *WeightSummary) {
	type dayAcc struct {
		sum float64
		n   int
	}
	byDay := make(map[string]*dayAcc)

	var readings []float64
	for _, e := range log.Events {
		v, ok := e.WeightValue()
		if !ok {
			continue
		}
		readings = append(readings, v)
		key := e.Timestamp.In(log.Window.Loc).Format("2006-01-02")
		acc := byDay[key]
		if acc == nil {
			acc = &dayAcc{}
			byDay[key] = acc
		}
		acc.sum += v
		acc.n++
	}

	if len(readings) == 0 {
		return nil, nil
	}

	var samples []WeightSample
	log.Window.EachDay(func(day time.Time) {
		acc := byDay[day.Format("2006-01-02")]
		if acc == nil {
			return
		}
		samples = append(samples, WeightSample{
			Display: day.Format("01/02"),
			Weight:  round2(acc.sum / float64(acc.n)),
		})
	})

	sum, min, max := readings[0], readings[0], readings[0]
	for _, v := range readings[1:] {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	trend, change := classifyTrend(samples)
	return samples, &WeightSummary{
		Average: round1(sum / float64(len(readings))),
		Min:     round1(min),
		Max:     round1(max),
		Trend:   trend,
		Change:  change,
	}
}

// classifyTrend compares the mean of the first half of the dated samples
// against the mean of the second half, splitting at the midpoint
// (rounding down). Fewer than 2 samples is insufficient data, reported
// as stable with zero change rather than an error.
func classifyTrend(samples []WeightSample) (Trend, float64) {
	if len(samples) < 2 {
		return TrendStable, 0
	}
	mid := len(samples) / 2
	change := mean(samples[mid:]) - mean(samples[:mid])
	switch {
	case change > trendThreshold:
		return TrendGaining, round2(change)
	case change < -trendThreshold:
		return TrendLosing, round2(change)
	default:
		return TrendStable, round2(change)
	}
}

func mean(samples []WeightSample) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s.Weight
	}
	return sum / float64(len(samples))
}
