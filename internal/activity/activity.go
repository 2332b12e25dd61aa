// Package activity defines the canonical running activity record and the
// normalizers that produce it from Strava data or manual input.
package activity

import (
	"fmt"
	"strconv"
	"time"
)

// Activity is one normalized running session. Field names match the
// published dataset JSON consumed by the dashboard.
//
// Optional-value sentinels, one per field: heart rates, suffer score and
// kudos use 0 for absent; coordinates use an empty slice; location strings
// and gear use JSON null. Pace strings use "0:00" on the bulk-fetch path and
// "N/A" on the manual-add path (see the units package).
type Activity struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name,omitempty"`
	Date               string    `json:"date"`
	Distance           float64   `json:"distance"` // meters
	DistanceMiles      string    `json:"distanceMiles"`
	DistanceKm         string    `json:"distanceKm"`
	MovingTime         int       `json:"movingTime"`  // seconds
	ElapsedTime        int       `json:"elapsedTime"` // seconds
	TotalElevationGain float64   `json:"totalElevationGain"` // meters
	AverageSpeed       float64   `json:"averageSpeed"`       // m/s
	MaxSpeed           float64   `json:"maxSpeed"`           // m/s
	AveragePaceMinMile string    `json:"averagePaceMinMile"`
	AveragePaceMinKm   string    `json:"averagePaceMinKm"`
	AverageHeartrate   int       `json:"averageHeartrate"`
	MaxHeartrate       int       `json:"maxHeartrate"`
	SufferScore        int       `json:"sufferScore"`
	KudosCount         int       `json:"kudosCount"`
	StartLatLng        []float64 `json:"startLatLng"`
	EndLatLng          []float64 `json:"endLatLng"`
	City               *string   `json:"city"`
	State              *string   `json:"state"`
	Country            *string   `json:"country"`
	Gear               *string   `json:"gear"`
	GearName           string    `json:"gearName,omitempty"`

	// Derived fields, computed once at normalization time and treated as
	// read-only by the aggregate calculator.
	PacePerMile      float64 `json:"pacePerMile"`      // seconds per mile
	ElevationPerMile float64 `json:"elevationPerMile"` // feet per mile
	SpeedMph         float64 `json:"speedMph"`
	Weekday          string  `json:"weekday"`
	Month            string  `json:"month"`
	Year             int     `json:"year"`
	QuarterYear      int     `json:"quarterYear"`
	IsWeekend        bool    `json:"isWeekend"`
	TimeOfDay        string  `json:"timeOfDay,omitempty"` // only when a timestamp was available
	Season           string  `json:"season"`
}

// Day returns the activity's calendar date anchored at UTC noon. Date-only
// strings parsed at midnight shift a day in western timezones; noon doesn't.
func (a *Activity) Day() time.Time {
	t, _ := time.Parse(time.RFC3339, a.Date+"T12:00:00Z")
	return t
}

// KmValue parses the fixed-precision distanceKm string. The aggregate
// calculator deliberately works from the published 2-decimal values, not the
// raw meters, so the summary matches what the dashboard displays.
func (a *Activity) KmValue() float64 {
	v, _ := strconv.ParseFloat(a.DistanceKm, 64)
	return v
}

// MilesValue parses the fixed-precision distanceMiles string.
func (a *Activity) MilesValue() float64 {
	v, _ := strconv.ParseFloat(a.DistanceMiles, 64)
	return v
}

// ValidationError reports a missing or malformed required field on a single
// input record. Bulk normalization skips the record; the manual-add path
// treats it as fatal.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid required field: %s", e.Field)
}

// Options carries normalization context. The gear map is passed explicitly
// rather than read from ambient state.
type Options struct {
	GearNames map[string]string
}
