// Package units provides the distance, speed and pace conversions used
// throughout the dataset pipeline.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Conversion constants. MetersPerMile is the figure Strava itself uses, which
// is why both it and the reciprocal MilesPerMeter appear: the published
// dataset was produced with both and they differ in the 4th decimal.
const (
	MilesPerMeter = 0.000621371
	KmPerMeter    = 0.001
	FeetPerMeter  = 3.28084
	MilesPerKm    = 0.621371
	MetersPerMile = 1609.34
)

// PaceMode selects the sentinel returned for a zero or undefined pace. The
// bulk fetch pipeline historically emitted "0:00" while the manual-add path
// emitted "N/A", and the dashboard tests for both, so the two modes are kept
// distinct rather than unified.
type PaceMode int

const (
	Bulk PaceMode = iota
	Manual
)

func (m PaceMode) sentinel() string {
	if m == Manual {
		return "N/A"
	}
	return "0:00"
}

// SpeedToPace converts a speed already expressed in the target unit per hour
// (mph or km/h) to a "M:SS" minutes-per-unit pace string. Zero and
// non-finite speeds return the mode's sentinel, never Inf or NaN.
func SpeedToPace(speedPerHour float64, mode PaceMode) string {
	if speedPerHour <= 0 || math.IsInf(speedPerHour, 0) || math.IsNaN(speedPerHour) {
		return mode.sentinel()
	}
	return SecondsToPace(3600 / speedPerHour)
}

// PaceToSeconds parses a "M:SS" pace string. Malformed input and the
// sentinels map to 0.
func PaceToSeconds(pace string) int {
	parts := strings.Split(pace, ":")
	if len(parts) != 2 {
		return 0
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return minutes*60 + seconds
}

// SecondsToPace formats a duration in seconds as "M:SS", flooring both parts.
func SecondsToPace(seconds float64) string {
	if seconds <= 0 || math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return "0:00"
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func MetersToMiles(m float64) float64 { return m * MilesPerMeter }
func MetersToKm(m float64) float64    { return m * KmPerMeter }
func MetersToFeet(m float64) float64  { return m * FeetPerMeter }
func KmToMiles(km float64) float64    { return km * MilesPerKm }

// Fixed2 renders a distance-derived value with the fixed two decimal places
// every distance string in the dataset uses.
func Fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Fixed1 renders hour and rate values with one decimal place.
func Fixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
