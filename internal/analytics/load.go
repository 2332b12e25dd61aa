package analytics

import (
	"fmt"
	"sort"

	"github.com/lildude/runboard/internal/activity"
	"github.com/lildude/runboard/internal/units"
)

// Intensity thresholds and multipliers for the training-load score. These
// are domain heuristics, tunable but fixed: faster than 5:00/km scores hard,
// 5:00–6:00 moderate, slower easy; a run with no pace data counts as
// moderate at half weight.
const (
	hardPaceSeconds     = 300
	moderatePaceSeconds = 360
	hardMultiplier      = 3
	moderateMultiplier  = 2
	easyMultiplier      = 1
	unknownMultiplier   = 1.5
)

// Recovery-risk thresholds on the weekly totals.
const (
	highRiskTotalLoad = 50
	highRiskHardLoad  = 20
	moderateTotalLoad = 30
)

// WeekLoad is one ISO week's distance-weighted intensity score.
type WeekLoad struct {
	Week           string  `json:"week"` // ISO week, e.g. 2025-W07
	Runs           int     `json:"runs"`
	TotalDistance  float64 `json:"totalDistance"` // km
	EasyLoad       float64 `json:"easyLoad"`
	ModerateLoad   float64 `json:"moderateLoad"`
	HardLoad       float64 `json:"hardLoad"`
	TotalLoad      float64 `json:"totalLoad"`
	RecoveryStatus string  `json:"recoveryStatus"`
}

// WeeklyTrainingLoad groups activities by ISO week, scores each run's
// distance by its pace-derived intensity, and classifies the week's recovery
// risk. Weeks are returned oldest first.
func WeeklyTrainingLoad(acts []activity.Activity) []WeekLoad {
	byWeek := map[string]*WeekLoad{}

	for _, a := range acts {
		year, week := a.Day().ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		wl := byWeek[key]
		if wl == nil {
			wl = &WeekLoad{Week: key}
			byWeek[key] = wl
		}

		km := a.KmValue()
		pace := units.PaceToSeconds(a.AveragePaceMinKm)
		switch {
		case pace > 0 && pace <= hardPaceSeconds:
			wl.HardLoad += km * hardMultiplier
		case pace > 0 && pace <= moderatePaceSeconds:
			wl.ModerateLoad += km * moderateMultiplier
		case pace > 0:
			wl.EasyLoad += km * easyMultiplier
		default:
			wl.ModerateLoad += km * unknownMultiplier
		}
		wl.Runs++
		wl.TotalDistance += km
	}

	weeks := make([]WeekLoad, 0, len(byWeek))
	for _, wl := range byWeek {
		wl.TotalLoad = wl.EasyLoad + wl.ModerateLoad + wl.HardLoad
		wl.RecoveryStatus = classifyWeek(wl.TotalLoad, wl.HardLoad)
		weeks = append(weeks, *wl)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Week < weeks[j].Week })
	return weeks
}

func classifyWeek(totalLoad, hardLoad float64) string {
	switch {
	case totalLoad > highRiskTotalLoad && hardLoad > highRiskHardLoad:
		return "High Risk"
	case totalLoad > moderateTotalLoad:
		return "Moderate"
	default:
		return "Good"
	}
}
