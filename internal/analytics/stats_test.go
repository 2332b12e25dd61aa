package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lildude/runboard/internal/activity"
)

func TestStdDevPopulation(t *testing.T) {
	// Population (not sample) standard deviation: divide by n.
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	assert.Zero(t, StdDev(nil))
	assert.Zero(t, StdDev([]float64{5}))
}

func TestMean(t *testing.T) {
	assert.Equal(t, 3.0, Mean([]float64{1, 2, 3, 4, 5}))
	assert.Zero(t, Mean(nil))
}

func TestRollingAverageWindowShrinksAtEdges(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}

	got := RollingAverage(values, 5)
	want := []float64{20, 25, 30, 35, 40}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "index %d", i)
	}

	// Window 1 is the identity.
	assert.Equal(t, values, RollingAverage(values, 1))
	assert.Empty(t, RollingAverage(nil, 5))
}

// spaced builds n runs with a fixed day gap between consecutive dates.
func spaced(n, gapDays int) []activity.Activity {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	acts := make([]activity.Activity, n)
	for i := range acts {
		date := start.AddDate(0, 0, i*gapDays).Format("2006-01-02")
		acts[i] = act(date, "5.00", "3.11", 1500, "5:00", "8:02")
	}
	return acts
}

func TestConsistencyBoundaries(t *testing.T) {
	tests := []struct {
		gapDays int
		want    string
	}{
		{2, "Very High"},
		{4, "High"},
		{7, "Moderate"},
		{8, "Low"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d day gap", tt.gapDays), func(t *testing.T) {
			assert.Equal(t, tt.want, consistency(spaced(8, tt.gapDays)))
		})
	}
}

func TestConsistencyNeedsSevenRuns(t *testing.T) {
	assert.Equal(t, "N/A", consistency(spaced(6, 2)))
}
