package analytics

import (
	"github.com/lildude/runboard/internal/activity"
	"github.com/lildude/runboard/internal/units"
)

// raceDistance is a nominal race distance with its qualifying band in km.
type raceDistance struct {
	label      string
	distanceKm float64
	lo, hi     float64
}

// The bands match what the dashboard has always tracked; the half-marathon
// band is asymmetric on purpose (20.5–21.6 around 21.1).
var raceDistances = []raceDistance{
	{"5K", 5, 4.5, 5.5},
	{"10K", 10, 9.5, 10.5},
	{"15K", 15, 14.5, 15.5},
	{"Half Marathon", 21.1, 20.5, 21.6},
}

type RecordProgression struct {
	Label         string    `json:"label"`
	DistanceKm    float64   `json:"distanceKm"`
	CurrentPR     PRPoint   `json:"currentPR"`
	History       []PRPoint `json:"history"`
	TotalAttempts int       `json:"totalAttempts"`
}

type PRPoint struct {
	Date        string  `json:"date"`
	Pace        string  `json:"pace"`
	PaceSeconds int     `json:"paceSeconds"`
	DistanceKm  float64 `json:"distanceKm"`
	TotalTime   int     `json:"totalTime"`
}

// PersonalRecords builds the PR progression per nominal race distance:
// qualifying runs are walked in chronological order and only strictly
// improving paces enter the history, so the result is the athlete's record
// as it stood over time, not just the single best. Distances with no
// qualifying runs are omitted.
func PersonalRecords(acts []activity.Activity) []RecordProgression {
	sorted := sortedByDate(acts)

	var records []RecordProgression
	for _, rd := range raceDistances {
		var qualifying []activity.Activity
		for _, a := range sorted {
			km := a.KmValue()
			if km >= rd.lo && km <= rd.hi && units.PaceToSeconds(a.AveragePaceMinKm) > 0 {
				qualifying = append(qualifying, a)
			}
		}
		if len(qualifying) == 0 {
			continue
		}

		var history []PRPoint
		best := 0
		for _, a := range qualifying {
			pace := units.PaceToSeconds(a.AveragePaceMinKm)
			if best == 0 || pace < best {
				best = pace
				history = append(history, PRPoint{
					Date:        a.Date,
					Pace:        a.AveragePaceMinKm,
					PaceSeconds: pace,
					DistanceKm:  a.KmValue(),
					TotalTime:   a.MovingTime,
				})
			}
		}

		records = append(records, RecordProgression{
			Label:         rd.label,
			DistanceKm:    rd.distanceKm,
			CurrentPR:     history[len(history)-1],
			History:       history,
			TotalAttempts: len(qualifying),
		})
	}
	return records
}
