package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/matthewbaird/litterstats/internal/event"
)

// DailyCount is the visit count for one calendar day of the window.
// Days with no visits are present with a zero count so charts render a
// continuous domain.
type DailyCount struct {
	Date    time.Time `json:"-"`
	Weekday string    `json:"weekday"` // "Mon".."Sun"
	Display string    `json:"display"` // "12/27"
	Count   int       `json:"count"`
}

// PeakHour describes the hour of day (local time) with the most visits
// aggregated across the whole window. Ties resolve to the earliest hour.
type PeakHour struct {
	Hour    int    `json:"hour"` // 0-23
	Count   int    `json:"count"`
	Display string `json:"display"` // "07:00 AM"
}

// BusiestDate describes the single day with the most visits.
type BusiestDate struct {
	DayName   string `json:"day_name"` // "Monday".."Sunday"
	Display   string `json:"display"`  // "12/27"
	Count     int    `json:"count"`
	IsWeekend bool   `json:"is_weekend"`
}

// VisitSummary is the Visit Aggregator output.
type VisitSummary struct {
	Daily        []DailyCount
	ByHour       [24]int
	TotalVisits  int
	VisitsPerDay float64
	Peak         *PeakHour    // nil when the window has no visits
	Busiest      *BusiestDate // nil when the window has no visits
}

// AggregateVisits partitions the log's visit events by calendar day and
// by hour of day, both in the window's local timezone.
func AggregateVisits(log NormalizedLog) VisitSummary {
	w := log.Window

	byDay := make(map[string]int, w.Days())
	var s VisitSummary
	for _, e := range log.Events {
		if e.Kind != event.KindVisit {
			continue
		}
		local := e.Timestamp.In(w.Loc)
		byDay[local.Format("2006-01-02")]++
		s.ByHour[local.Hour()]++
		s.TotalVisits++
	}

	w.EachDay(func(day time.Time) {
		s.Daily = append(s.Daily, DailyCount{
			Date:    day,
			Weekday: day.Format("Mon"),
			Display: day.Format("01/02"),
			Count:   byDay[day.Format("2006-01-02")],
		})
	})

	s.VisitsPerDay = round1(float64(s.TotalVisits) / float64(w.Days()))

	if s.TotalVisits > 0 {
		s.Peak = peakHour(s.ByHour)
		s.Busiest = busiestDate(s.Daily)
	}
	return s
}

// peakHour scans hours 0..23 in order so ties go to the earliest hour.
func peakHour(byHour [24]int) *PeakHour {
	best := 0
	for h, c := range byHour {
		if c > byHour[best] {
			best = h
		}
	}
	return &PeakHour{
		Hour:    best,
		Count:   byHour[best],
		Display: formatHour(best),
	}
}

// busiestDate picks the day with the most visits; ties go to the
// earliest day since Daily is in window order.
func busiestDate(daily []DailyCount) *BusiestDate {
	best := daily[0]
	for _, d := range daily[1:] {
		if d.Count > best.Count {
			best = d
		}
	}
	wd := best.Date.Weekday()
	return &BusiestDate{
		DayName:   wd.String(),
		Display:   best.Display,
		Count:     best.Count,
		IsWeekend: wd == time.Saturday || wd == time.Sunday,
	}
}

// formatHour renders an hour of day as zero-padded 12-hour time,
// e.g. 7 -> "07:00 AM", 0 -> "12:00 AM", 19 -> "07:00 PM".
func formatHour(hour int) string {
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	return fmt.Sprintf("%02d:00 %s", h12, period)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
