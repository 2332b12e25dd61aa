package analytics

import (
	"math"

	"github.com/lildude/runboard/internal/activity"
)

// DefaultRollingWindow is the width of the centered moving window used for
// the smoothed pace and heart-rate series.
const DefaultRollingWindow = 5

// Mean returns the arithmetic mean, or 0 for an empty list.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation, or 0 for an empty list.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)))
}

// RollingAverage computes a centered moving average. The window is clipped
// at the sequence boundaries: it shrinks near the ends instead of wrapping
// or padding.
func RollingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	half := window / 2
	for i := range values {
		start := i - half
		if start < 0 {
			start = 0
		}
		end := i + half + 1
		if end > len(values) {
			end = len(values)
		}
		out[i] = Mean(values[start:end])
	}
	return out
}

// consistency buckets the average day-gap between consecutive runs. The
// boundaries are inclusive on the lower bucket: an average gap of exactly 2
// days still rates "Very High".
func consistency(sorted []activity.Activity) string {
	if len(sorted) < 7 {
		return "N/A"
	}
	var total float64
	for i := 1; i < len(sorted); i++ {
		total += sorted[i].Day().Sub(sorted[i-1].Day()).Hours() / 24
	}
	avgGap := total / float64(len(sorted)-1)
	switch {
	case avgGap <= 2:
		return "Very High"
	case avgGap <= 4:
		return "High"
	case avgGap <= 7:
		return "Moderate"
	default:
		return "Low"
	}
}
