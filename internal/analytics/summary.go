// Package analytics computes the summary and analytics aggregates published
// with the running dataset. Every function is pure: activities in, values
// out, no I/O and no reads of ambient state. All of them sort internally and
// return defined zero values for empty input.
package analytics

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/lildude/runboard/internal/activity"
	"github.com/lildude/runboard/internal/units"
)

// Summary is the headline aggregate block. Distances are in kilometres.
// It is recomputed from scratch on every dataset mutation, never patched.
type Summary struct {
	TotalDistance      string    `json:"totalDistance"`
	TotalTimeHours     string    `json:"totalTimeHours"`
	TotalElevationGain string    `json:"totalElevationGain"`
	AverageDistance    string    `json:"averageDistance"`
	AveragePace        string    `json:"averagePace"`
	ActivitiesPerWeek  string    `json:"activitiesPerWeek"`
	DateRange          DateRange `json:"dateRange"`
	YearToDateStats    YTDStats  `json:"yearToDateStats"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// YTDStats covers January 1 of the invocation year through the invocation
// time; the only aggregate that depends on "now".
type YTDStats struct {
	TotalDays             int    `json:"totalDays"`
	ActiveDays            int    `json:"activeDays"`
	AverageDistancePerRun string `json:"averageDistancePerRun"`
	TotalRuns             int    `json:"totalRuns"`
	LongestRun            string `json:"longestRun"`
}

func emptySummary() Summary {
	return Summary{
		TotalDistance:      "0.00",
		TotalTimeHours:     "0.0",
		TotalElevationGain: "0",
		AverageDistance:    "0.00",
		AveragePace:        "N/A",
		ActivitiesPerWeek:  "0",
		YearToDateStats: YTDStats{
			AverageDistancePerRun: "0.00",
			LongestRun:            "0.00",
		},
	}
}

// ComputeSummary derives the Summary from the activity list. The average
// pace is total moving time per run divided by the average distance per run,
// weighting by total effort rather than averaging per-run paces; the trends
// block uses the per-run mean and the two are intentionally different
// formulas.
func ComputeSummary(acts []activity.Activity, now time.Time) Summary {
	if len(acts) == 0 {
		return emptySummary()
	}

	sorted := sortedByDate(acts)

	var totalKm, totalElevation float64
	var totalTime int
	for _, a := range sorted {
		totalKm += a.KmValue()
		totalTime += a.MovingTime
		totalElevation += a.TotalElevationGain
	}

	n := float64(len(sorted))
	avgKm := totalKm / n

	pace := "N/A"
	if avgKm > 0 {
		pace = units.SecondsToPace(float64(totalTime) / n / avgKm)
	}

	first := sorted[0].Day()
	last := sorted[len(sorted)-1].Day()
	weeks := last.Sub(first).Hours() / 24 / 7
	if weeks < 1 {
		weeks = 1
	}

	return Summary{
		TotalDistance:      units.Fixed2(totalKm),
		TotalTimeHours:     units.Fixed1(float64(totalTime) / 3600),
		TotalElevationGain: strconv.Itoa(int(math.Round(totalElevation))),
		AverageDistance:    units.Fixed2(avgKm),
		AveragePace:        pace,
		ActivitiesPerWeek:  units.Fixed1(n / weeks),
		DateRange: DateRange{
			Start: sorted[0].Date,
			End:   sorted[len(sorted)-1].Date,
		},
		YearToDateStats: yearToDate(sorted, now),
	}
}

func yearToDate(sorted []activity.Activity, now time.Time) YTDStats {
	year := now.Year()
	var ytd []activity.Activity
	for _, a := range sorted {
		if a.Year == year {
			ytd = append(ytd, a)
		}
	}

	stats := YTDStats{
		AverageDistancePerRun: "0.00",
		LongestRun:            "0.00",
	}
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	stats.TotalDays = int(now.Sub(jan1).Hours()/24) + 1

	if len(ytd) == 0 {
		return stats
	}

	days := map[string]struct{}{}
	var totalKm, longest float64
	for _, a := range ytd {
		days[a.Date] = struct{}{}
		km := a.KmValue()
		totalKm += km
		if km > longest {
			longest = km
		}
	}

	stats.ActiveDays = len(days)
	stats.TotalRuns = len(ytd)
	stats.AverageDistancePerRun = units.Fixed2(totalKm / float64(len(ytd)))
	stats.LongestRun = units.Fixed2(longest)
	return stats
}

// DateSpan returns the inclusive first/last activity dates and the inclusive
// day count between them. Zero values for an empty list.
func DateSpan(acts []activity.Activity) (start, end string, totalDays int) {
	if len(acts) == 0 {
		return "", "", 0
	}
	sorted := sortedByDate(acts)
	first := sorted[0]
	last := sorted[len(sorted)-1]
	days := int(last.Day().Sub(first.Day()).Hours()/24) + 1
	return first.Date, last.Date, days
}

// sortedByDate returns a date-ascending copy; callers never rely on the
// input ordering.
func sortedByDate(acts []activity.Activity) []activity.Activity {
	sorted := make([]activity.Activity, len(acts))
	copy(sorted, acts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}
