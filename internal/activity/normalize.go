package activity

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lildude/runboard/internal/strava"
	"github.com/lildude/runboard/internal/units"
)

// FromStrava normalizes one raw Strava activity into the canonical form,
// computing every derived field in one place. It is a pure function: the
// caller decides what to do with a ValidationError (skip during bulk sync,
// abort during a single add).
func FromStrava(raw *strava.SummaryActivity, opts Options) (*Activity, error) {
	if raw.Distance <= 0 {
		return nil, &ValidationError{Field: "distance"}
	}
	if raw.MovingTime <= 0 {
		return nil, &ValidationError{Field: "moving_time"}
	}

	date := raw.StartDate.UTC().Format("2006-01-02")
	miles := units.MetersToMiles(raw.Distance)
	km := units.MetersToKm(raw.Distance)

	mph := raw.AverageSpeed * 3600 * units.MilesPerMeter
	kph := raw.AverageSpeed * 3.6

	a := &Activity{
		ID:                 strconv.FormatInt(raw.ID, 10),
		Name:               raw.Name,
		Date:               date,
		Distance:           raw.Distance,
		DistanceMiles:      units.Fixed2(miles),
		DistanceKm:         units.Fixed2(km),
		MovingTime:         raw.MovingTime,
		ElapsedTime:        raw.ElapsedTime,
		TotalElevationGain: raw.TotalElevationGain,
		AverageSpeed:       raw.AverageSpeed,
		MaxSpeed:           raw.MaxSpeed,
		AveragePaceMinMile: units.SpeedToPace(mph, units.Bulk),
		AveragePaceMinKm:   units.SpeedToPace(kph, units.Bulk),
		AverageHeartrate:   int(math.Round(raw.AverageHeartrate)),
		MaxHeartrate:       int(math.Round(raw.MaxHeartrate)),
		SufferScore:        int(math.Round(raw.SufferScore)),
		KudosCount:         raw.KudosCount,
		StartLatLng:        coords(raw.StartLatlng),
		EndLatLng:          coords(raw.EndLatlng),
		City:               optional(raw.LocationCity),
		State:              optional(raw.LocationState),
		Country:            optional(raw.LocationCountry),
		Gear:               optional(raw.GearID),
		TimeOfDay:          timeOfDay(raw.StartDate.UTC().Hour()),
	}
	if a.Gear != nil {
		a.GearName = opts.GearNames[*a.Gear]
	}

	deriveRates(a)
	deriveCalendar(a)

	return a, nil
}

// ManualEntry is the input to the manual-add path. Distance is in
// kilometres; moving time in seconds.
type ManualEntry struct {
	Date             string
	DistanceKm       float64
	MovingTime       int
	ElevationGain    float64 // meters
	AverageHeartrate int
	MaxHeartrate     int
}

// FromManual builds an Activity from manually supplied values. There is no
// trusted speed field, so average speed is derived from distance and moving
// time, and max speed is a rough estimate.
func FromManual(entry ManualEntry, opts Options) (*Activity, error) {
	if _, err := time.Parse("2006-01-02", entry.Date); err != nil {
		return nil, &ValidationError{Field: "date"}
	}
	if entry.DistanceKm <= 0 {
		return nil, &ValidationError{Field: "distance"}
	}
	if entry.MovingTime <= 0 {
		return nil, &ValidationError{Field: "moving_time"}
	}

	distanceMiles := units.Fixed2(units.KmToMiles(entry.DistanceKm))
	miles, _ := strconv.ParseFloat(distanceMiles, 64)

	mph := miles * 3600 / float64(entry.MovingTime)
	mps := mph / 2.237

	a := &Activity{
		ID:                 uuid.NewString(),
		Date:               entry.Date,
		Distance:           entry.DistanceKm * 1000,
		DistanceMiles:      distanceMiles,
		DistanceKm:         units.Fixed2(entry.DistanceKm),
		MovingTime:         entry.MovingTime,
		ElapsedTime:        entry.MovingTime,
		TotalElevationGain: entry.ElevationGain,
		AverageSpeed:       mps,
		MaxSpeed:           mps * 1.2, // estimate, no max speed in manual input
		AveragePaceMinMile: units.SpeedToPace(mph, units.Manual),
		AveragePaceMinKm:   units.SpeedToPace(mph*1.60934, units.Manual),
		AverageHeartrate:   entry.AverageHeartrate,
		MaxHeartrate:       entry.MaxHeartrate,
		SufferScore:        int(math.Round(float64(entry.AverageHeartrate) / 200 * 100)),
		StartLatLng:        []float64{},
		EndLatLng:          []float64{},
	}
	if entry.AverageHeartrate == 0 {
		a.SufferScore = 0
	}

	deriveRates(a)
	deriveCalendar(a)

	return a, nil
}

// deriveRates fills the per-activity rate fields shared by both paths.
func deriveRates(a *Activity) {
	miles := a.MilesValue()
	if miles > 0 {
		a.PacePerMile = float64(a.MovingTime) / miles
		a.ElevationPerMile = units.MetersToFeet(a.TotalElevationGain) / miles
	}
	if a.MovingTime > 0 {
		a.SpeedMph = miles * 3600 / float64(a.MovingTime)
	}
}

// deriveCalendar fills the calendar fields from the date anchored at UTC
// noon, so date-only strings never shift a day under a local timezone.
func deriveCalendar(a *Activity) {
	d := a.Day()
	a.Weekday = d.Weekday().String()
	a.Month = d.Month().String()
	a.Year = d.Year()
	a.QuarterYear = (int(d.Month())-1)/3 + 1
	a.IsWeekend = d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
	a.Season = season(d.Month())
}

// season maps a calendar month to a season name. Northern-hemisphere fixed
// mapping, kept as published: changing it would silently alter historical
// output.
func season(m time.Month) string {
	switch {
	case m >= time.March && m <= time.May:
		return "Spring"
	case m >= time.June && m <= time.August:
		return "Summer"
	case m >= time.September && m <= time.November:
		return "Fall"
	default:
		return "Winter"
	}
}

func timeOfDay(hour int) string {
	switch {
	case hour < 6:
		return "Early Morning"
	case hour < 12:
		return "Morning"
	case hour < 17:
		return "Afternoon"
	case hour < 20:
		return "Evening"
	default:
		return "Night"
	}
}

func coords(ll []float64) []float64 {
	if len(ll) == 0 {
		return []float64{}
	}
	return ll
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
