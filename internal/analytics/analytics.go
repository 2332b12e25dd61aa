package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/lildude/runboard/internal/activity"
	"github.com/lildude/runboard/internal/units"
)

// Analytics is the extended aggregate block the dashboard charts consume.
// TotalStats works in miles where Summary works in kilometres; both shapes
// are preserved from the published dataset.
type Analytics struct {
	TotalStats       TotalStats          `json:"totalStats"`
	Trends           Trends              `json:"trends"`
	Performance      Performance         `json:"performance"`
	Temporal         Temporal            `json:"temporal"`
	Summaries        Summaries           `json:"summaries"`
	TrainingLoad     []WeekLoad          `json:"trainingLoad"`
	PRProgression    []RecordProgression `json:"prProgression"`
	RollingPace      []RollingPoint      `json:"rollingPace"`
	RollingHeartrate []RollingPoint      `json:"rollingHeartrate"`
}

type TotalStats struct {
	TotalRuns          int    `json:"totalRuns"`
	TotalDistance      string `json:"totalDistance"` // miles
	TotalTimeHours     string `json:"totalTimeHours"`
	TotalElevationFeet string `json:"totalElevationFeet"`
	AverageDistance    string `json:"averageDistance"`
	AverageTimeMinutes string `json:"averageTimeMinutes"`
	LongestRun         string `json:"longestRun"`
	ShortestRun        string `json:"shortestRun"`
}

type Trends struct {
	DistanceTrend     string `json:"distanceTrend"`
	PaceTrend         string `json:"paceTrend"`
	RecentAvgDistance string `json:"recentAvgDistance"`
	RecentAvgPace     string `json:"recentAvgPace"`
	Consistency       string `json:"consistency"`
}

type Performance struct {
	BestPace            string     `json:"bestPace"`
	WorstPace           string     `json:"worstPace"`
	PaceVariability     string     `json:"paceVariability"`
	DistanceVariability string     `json:"distanceVariability"`
	PersonalRecords     PRSnapshot `json:"personalRecords"`
}

// PRSnapshot is the simple best-result view: the single longest and fastest
// runs. The full progression lives in PRProgression.
type PRSnapshot struct {
	LongestRun  *RunRef `json:"longestRun"`
	FastestPace *RunRef `json:"fastestPace"`
}

type RunRef struct {
	Date     string `json:"date"`
	Name     string `json:"name,omitempty"`
	Distance string `json:"distance"`
	Pace     string `json:"pace,omitempty"`
}

type Temporal struct {
	FavoriteDay       string                 `json:"favoriteDay"`
	FavoriteTime      string                 `json:"favoriteTime"`
	WeekendVsWeekday  WeekendSplit           `json:"weekendVsWeekday"`
	SeasonalBreakdown map[string]SeasonStats `json:"seasonalBreakdown"`
}

type WeekendSplit struct {
	Weekend int `json:"weekend"`
	Weekday int `json:"weekday"`
}

type SeasonStats struct {
	Count       int    `json:"count"`
	AvgDistance string `json:"avgDistance"` // miles
}

type Summaries struct {
	Monthly map[string]MonthSummary `json:"monthly"`
	Weekly  []WeekSummary           `json:"weekly"`
}

type MonthSummary struct {
	Runs     int    `json:"runs"`
	Distance string `json:"distance"` // miles
	Time     string `json:"time"`     // hours
}

type WeekSummary struct {
	Week     string `json:"week"` // week-start date, Sunday
	Runs     int    `json:"runs"`
	Distance string `json:"distance"` // miles
	Time     string `json:"time"`     // hours
}

type RollingPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Raw   float64 `json:"raw"`
}

// Compute assembles the full analytics block. Pure and deterministic for a
// fixed now; empty input yields a zero-valued block, never an error.
func Compute(acts []activity.Activity, now time.Time) Analytics {
	sorted := sortedByDate(acts)
	return Analytics{
		TotalStats:       totalStats(sorted),
		Trends:           trends(sorted),
		Performance:      performance(sorted),
		Temporal:         temporal(sorted),
		Summaries:        summaries(sorted),
		TrainingLoad:     WeeklyTrainingLoad(sorted),
		PRProgression:    PersonalRecords(sorted),
		RollingPace:      RollingPace(sorted, DefaultRollingWindow),
		RollingHeartrate: RollingHeartrate(sorted, DefaultRollingWindow),
	}
}

func totalStats(sorted []activity.Activity) TotalStats {
	if len(sorted) == 0 {
		return TotalStats{
			TotalDistance:      "0.00",
			TotalTimeHours:     "0.0",
			TotalElevationFeet: "0",
			AverageDistance:    "0.00",
			AverageTimeMinutes: "0",
			LongestRun:         "0.00",
			ShortestRun:        "0.00",
		}
	}

	var totalMiles, totalFeet, longest float64
	var totalTime int
	shortest := sorted[0].MilesValue()
	for _, a := range sorted {
		miles := a.MilesValue()
		totalMiles += miles
		totalTime += a.MovingTime
		totalFeet += units.MetersToFeet(a.TotalElevationGain)
		if miles > longest {
			longest = miles
		}
		if miles < shortest {
			shortest = miles
		}
	}

	n := float64(len(sorted))
	return TotalStats{
		TotalRuns:          len(sorted),
		TotalDistance:      units.Fixed2(totalMiles),
		TotalTimeHours:     units.Fixed1(float64(totalTime) / 3600),
		TotalElevationFeet: strconv.FormatFloat(totalFeet, 'f', 0, 64),
		AverageDistance:    units.Fixed2(totalMiles / n),
		AverageTimeMinutes: strconv.FormatFloat(float64(totalTime)/n/60, 'f', 0, 64),
		LongestRun:         units.Fixed2(longest),
		ShortestRun:        units.Fixed2(shortest),
	}
}

// trends compares the mean of the most recent runs against the mean of the
// earliest, window capped at five. Pace here is the arithmetic mean of
// per-run mile paces, unlike Summary's effort-weighted pace.
func trends(sorted []activity.Activity) Trends {
	if len(sorted) < 2 {
		return Trends{Consistency: "N/A"}
	}

	window := len(sorted)
	if window > 5 {
		window = 5
	}
	recent := sorted[len(sorted)-window:]
	earlier := sorted[:window]

	recentDist := Mean(milesOf(recent))
	earlierDist := Mean(milesOf(earlier))
	recentPace := Mean(pacesOf(recent))
	earlierPace := Mean(pacesOf(earlier))

	distanceTrend := "declining"
	if recentDist > earlierDist {
		distanceTrend = "improving"
	}
	paceTrend := "declining"
	if recentPace < earlierPace {
		paceTrend = "improving"
	}

	return Trends{
		DistanceTrend:     distanceTrend,
		PaceTrend:         paceTrend,
		RecentAvgDistance: units.Fixed2(recentDist),
		RecentAvgPace:     units.SecondsToPace(recentPace),
		Consistency:       consistency(sorted),
	}
}

func performance(sorted []activity.Activity) Performance {
	var paces, distances []float64
	for _, a := range sorted {
		distances = append(distances, a.MilesValue())
		if p := units.PaceToSeconds(a.AveragePaceMinMile); p > 0 {
			paces = append(paces, float64(p))
		}
	}

	perf := Performance{
		BestPace:            "N/A",
		WorstPace:           "N/A",
		PaceVariability:     "N/A",
		DistanceVariability: fmt.Sprintf("%s mi", units.Fixed2(StdDev(distances))),
		PersonalRecords:     prSnapshot(sorted),
	}

	if len(paces) > 0 {
		best, worst := paces[0], paces[0]
		for _, p := range paces {
			if p < best {
				best = p
			}
			if p > worst {
				worst = p
			}
		}
		perf.BestPace = units.SecondsToPace(best)
		perf.WorstPace = units.SecondsToPace(worst)
		perf.PaceVariability = fmt.Sprintf("%.0f sec", StdDev(paces))
	}
	return perf
}

func prSnapshot(sorted []activity.Activity) PRSnapshot {
	var snap PRSnapshot
	var bestPace int
	for i := range sorted {
		a := &sorted[i]
		if snap.LongestRun == nil || a.MilesValue() > mustFloat(snap.LongestRun.Distance) {
			snap.LongestRun = &RunRef{Date: a.Date, Name: a.Name, Distance: a.DistanceMiles}
		}
		if p := units.PaceToSeconds(a.AveragePaceMinMile); p > 0 && (bestPace == 0 || p < bestPace) {
			bestPace = p
			snap.FastestPace = &RunRef{Date: a.Date, Name: a.Name, Distance: a.DistanceMiles, Pace: a.AveragePaceMinMile}
		}
	}
	return snap
}

func temporal(sorted []activity.Activity) Temporal {
	t := Temporal{
		FavoriteDay:       "N/A",
		FavoriteTime:      "N/A",
		SeasonalBreakdown: map[string]SeasonStats{},
	}

	days := map[string]int{}
	times := map[string]int{}
	type seasonAcc struct {
		count int
		miles float64
	}
	seasons := map[string]*seasonAcc{}

	for _, a := range sorted {
		days[a.Weekday]++
		if a.TimeOfDay != "" {
			times[a.TimeOfDay]++
		}
		if a.IsWeekend {
			t.WeekendVsWeekday.Weekend++
		} else {
			t.WeekendVsWeekday.Weekday++
		}
		acc := seasons[a.Season]
		if acc == nil {
			acc = &seasonAcc{}
			seasons[a.Season] = acc
		}
		acc.count++
		acc.miles += a.MilesValue()
	}

	if fav := topKey(days); fav != "" {
		t.FavoriteDay = fav
	}
	if fav := topKey(times); fav != "" {
		t.FavoriteTime = fav
	}
	for season, acc := range seasons {
		t.SeasonalBreakdown[season] = SeasonStats{
			Count:       acc.count,
			AvgDistance: units.Fixed2(acc.miles / float64(acc.count)),
		}
	}
	return t
}

func summaries(sorted []activity.Activity) Summaries {
	monthly := map[string]MonthSummary{}
	type acc struct {
		runs  int
		miles float64
		time  int
	}
	months := map[string]*acc{}
	weeks := map[string]*acc{}

	for _, a := range sorted {
		mk := fmt.Sprintf("%d-%s", a.Year, a.Month)
		if months[mk] == nil {
			months[mk] = &acc{}
		}
		months[mk].runs++
		months[mk].miles += a.MilesValue()
		months[mk].time += a.MovingTime

		// Sunday-start weeks, matching the published weekly rollup.
		d := a.Day()
		wk := d.AddDate(0, 0, -int(d.Weekday())).Format("2006-01-02")
		if weeks[wk] == nil {
			weeks[wk] = &acc{}
		}
		weeks[wk].runs++
		weeks[wk].miles += a.MilesValue()
		weeks[wk].time += a.MovingTime
	}

	for k, v := range months {
		monthly[k] = MonthSummary{
			Runs:     v.runs,
			Distance: units.Fixed2(v.miles),
			Time:     units.Fixed1(float64(v.time) / 3600),
		}
	}

	weekKeys := make([]string, 0, len(weeks))
	for k := range weeks {
		weekKeys = append(weekKeys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(weekKeys)))
	if len(weekKeys) > 12 {
		weekKeys = weekKeys[:12]
	}

	weekly := make([]WeekSummary, 0, len(weekKeys))
	for _, k := range weekKeys {
		v := weeks[k]
		weekly = append(weekly, WeekSummary{
			Week:     k,
			Runs:     v.runs,
			Distance: units.Fixed2(v.miles),
			Time:     units.Fixed1(float64(v.time) / 3600),
		})
	}

	return Summaries{Monthly: monthly, Weekly: weekly}
}

// RollingPace returns the centered rolling average of per-km pace seconds
// over runs with a usable pace, oldest first.
func RollingPace(acts []activity.Activity, window int) []RollingPoint {
	sorted := sortedByDate(acts)
	var withPace []activity.Activity
	var values []float64
	for _, a := range sorted {
		if p := units.PaceToSeconds(a.AveragePaceMinKm); p > 0 {
			withPace = append(withPace, a)
			values = append(values, float64(p))
		}
	}
	return rollingPoints(withPace, values, window)
}

// RollingHeartrate returns the centered rolling average of heart rate over
// runs that recorded one, oldest first.
func RollingHeartrate(acts []activity.Activity, window int) []RollingPoint {
	sorted := sortedByDate(acts)
	var withHR []activity.Activity
	var values []float64
	for _, a := range sorted {
		if a.AverageHeartrate > 0 {
			withHR = append(withHR, a)
			values = append(values, float64(a.AverageHeartrate))
		}
	}
	return rollingPoints(withHR, values, window)
}

func rollingPoints(acts []activity.Activity, values []float64, window int) []RollingPoint {
	if len(acts) == 0 {
		return nil
	}
	smoothed := RollingAverage(values, window)
	points := make([]RollingPoint, len(acts))
	for i, a := range acts {
		points[i] = RollingPoint{Date: a.Date, Value: smoothed[i], Raw: values[i]}
	}
	return points
}

func milesOf(acts []activity.Activity) []float64 {
	out := make([]float64, len(acts))
	for i, a := range acts {
		out[i] = a.MilesValue()
	}
	return out
}

func pacesOf(acts []activity.Activity) []float64 {
	var out []float64
	for _, a := range acts {
		out = append(out, float64(units.PaceToSeconds(a.AveragePaceMinMile)))
	}
	return out
}

// topKey returns the most frequent key, breaking ties alphabetically so the
// result is deterministic.
func topKey(counts map[string]int) string {
	var best string
	bestCount := 0
	for k, c := range counts {
		if c > bestCount || (c == bestCount && (best == "" || k < best)) {
			best, bestCount = k, c
		}
	}
	return best
}

func mustFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
