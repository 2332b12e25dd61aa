// Package dataset defines the aggregate root written to the running-data
// JSON files and the merge/upsert engine that mutates it. Everything here
// operates on in-memory values: persistence lives in the store package.
package dataset

import (
	"sort"
	"time"

	"github.com/lildude/runboard/internal/activity"
	"github.com/lildude/runboard/internal/analytics"
)

// Dataset is the full persisted document. Activities are kept sorted
// descending by date; summary and analytics are pure functions of the
// activity list and are rebuilt wholesale on every mutation so they can
// never drift from it.
type Dataset struct {
	LastUpdated     string              `json:"lastUpdated"`
	TotalActivities int                 `json:"totalActivities"`
	YearToDate      int                 `json:"yearToDate"`
	DataRange       DataRange           `json:"dataRange"`
	Activities      []activity.Activity `json:"activities"`
	Summary         analytics.Summary   `json:"summary"`
	Analytics       analytics.Analytics `json:"analytics"`
	ProcessedAt     string              `json:"processedAt,omitempty"`
}

type DataRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	TotalDays int    `json:"totalDays"`
}

// Rebuild assembles a dataset from an activity list: the bulk pipeline and
// the tail end of every upsert. The input slice is not modified.
func Rebuild(acts []activity.Activity, now time.Time) Dataset {
	sorted := make([]activity.Activity, len(acts))
	copy(sorted, acts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	start, end, days := analytics.DateSpan(sorted)

	return Dataset{
		LastUpdated:     now.UTC().Format(time.RFC3339),
		TotalActivities: len(sorted),
		YearToDate:      now.Year(),
		DataRange:       DataRange{StartDate: start, EndDate: end, TotalDays: days},
		Activities:      sorted,
		Summary:         analytics.ComputeSummary(sorted, now),
		Analytics:       analytics.Compute(sorted, now),
		ProcessedAt:     now.UTC().Format(time.RFC3339),
	}
}

// Upsert integrates one activity into the dataset, keyed by calendar date:
// an existing activity on the same date is replaced in full, otherwise the
// new one is appended. The activity list is re-sorted and every aggregate
// recomputed in the same returned value; the receiver is left untouched.
func Upsert(ds Dataset, act activity.Activity, now time.Time) Dataset {
	acts := make([]activity.Activity, len(ds.Activities))
	copy(acts, ds.Activities)

	replaced := false
	for i := range acts {
		if acts[i].Date == act.Date {
			acts[i] = act
			replaced = true
			break
		}
	}
	if !replaced {
		acts = append(acts, act)
	}

	return Rebuild(acts, now)
}

// FindByDate returns the activity on the given date, if any.
func (d *Dataset) FindByDate(date string) (activity.Activity, bool) {
	for _, a := range d.Activities {
		if a.Date == date {
			return a, true
		}
	}
	return activity.Activity{}, false
}
