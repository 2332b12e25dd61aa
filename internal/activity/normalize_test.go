package activity

import (
	"errors"
	"testing"
	"time"

	"github.com/lildude/runboard/internal/strava"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestFromStrava(t *testing.T) {
	raw := &strava.SummaryActivity{
		ID:                 12345,
		Name:               "Morning Run",
		Type:               "Run",
		StartDate:          mustTime(t, "2025-01-04T07:30:00Z"),
		Distance:           5000,
		MovingTime:         1500,
		ElapsedTime:        1550,
		TotalElevationGain: 50,
		AverageSpeed:       3.3333,
		MaxSpeed:           4.1,
		AverageHeartrate:   151.6,
		MaxHeartrate:       172,
		SufferScore:        34,
		KudosCount:         3,
		StartLatlng:        []float64{51.5, -0.1},
		LocationCity:       "London",
		GearID:             "g12345",
	}

	got, err := FromStrava(raw, Options{GearNames: map[string]string{"g12345": "Pegasus 40"}})
	if err != nil {
		t.Fatalf("expected nil error, got %q", err)
	}

	checks := []struct {
		desc string
		got  interface{}
		want interface{}
	}{
		{"id", got.ID, "12345"},
		{"date truncated to calendar day", got.Date, "2025-01-04"},
		{"distanceKm", got.DistanceKm, "5.00"},
		{"distanceMiles", got.DistanceMiles, "3.11"},
		{"km pace", got.AveragePaceMinKm, "5:00"},
		{"mile pace", got.AveragePaceMinMile, "8:02"},
		{"average heartrate rounded", got.AverageHeartrate, 152},
		{"weekday", got.Weekday, "Saturday"},
		{"month", got.Month, "January"},
		{"year", got.Year, 2025},
		{"quarter", got.QuarterYear, 1},
		{"weekend", got.IsWeekend, true},
		{"season", got.Season, "Winter"},
		{"time of day", got.TimeOfDay, "Morning"},
		{"gear name", got.GearName, "Pegasus 40"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.desc, c.got, c.want)
		}
	}

	if got.City == nil || *got.City != "London" {
		t.Errorf("city: got %v, want London", got.City)
	}
	if got.State != nil {
		t.Errorf("state should be null when absent, got %v", *got.State)
	}
	if got.EndLatLng == nil || len(got.EndLatLng) != 0 {
		t.Errorf("missing end coordinates should be an empty slice, got %v", got.EndLatLng)
	}
}

func TestFromStravaZeroSpeed(t *testing.T) {
	raw := &strava.SummaryActivity{
		ID:         1,
		StartDate:  mustTime(t, "2025-03-10T18:00:00Z"),
		Distance:   3000,
		MovingTime: 1200,
	}
	got, err := FromStrava(raw, Options{})
	if err != nil {
		t.Fatalf("expected nil error, got %q", err)
	}
	// Bulk path uses the "0:00" sentinel for an absent average speed.
	if got.AveragePaceMinMile != "0:00" || got.AveragePaceMinKm != "0:00" {
		t.Errorf("expected 0:00 sentinels, got %q and %q", got.AveragePaceMinMile, got.AveragePaceMinKm)
	}
}

func TestFromStravaValidation(t *testing.T) {
	tests := []struct {
		desc  string
		raw   strava.SummaryActivity
		field string
	}{
		{"missing distance", strava.SummaryActivity{MovingTime: 600}, "distance"},
		{"missing moving time", strava.SummaryActivity{Distance: 5000}, "moving_time"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			tt.raw.StartDate = mustTime(t, "2025-01-01T08:00:00Z")
			_, err := FromStrava(&tt.raw, Options{})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestFromManual(t *testing.T) {
	entry := ManualEntry{
		Date:             "2025-06-15",
		DistanceKm:       10,
		MovingTime:       3000,
		ElevationGain:    80,
		AverageHeartrate: 150,
		MaxHeartrate:     170,
	}

	got, err := FromManual(entry, Options{})
	if err != nil {
		t.Fatalf("expected nil error, got %q", err)
	}

	if got.ID == "" {
		t.Error("expected a generated id")
	}
	if got.Distance != 10000 {
		t.Errorf("distance: got %v, want 10000", got.Distance)
	}
	if got.DistanceMiles != "6.21" {
		t.Errorf("distanceMiles: got %q, want 6.21", got.DistanceMiles)
	}
	if got.ElapsedTime != got.MovingTime {
		t.Errorf("manual entries carry no elapsed time; got %d, want %d", got.ElapsedTime, got.MovingTime)
	}
	// Speed is derived from distance and time, never trusted from input.
	if got.AverageSpeed <= 0 || got.MaxSpeed <= got.AverageSpeed {
		t.Errorf("derived speeds look wrong: avg %v, max %v", got.AverageSpeed, got.MaxSpeed)
	}
	if got.SufferScore != 75 {
		t.Errorf("sufferScore: got %d, want 75", got.SufferScore)
	}
	if got.Season != "Summer" {
		t.Errorf("season: got %q, want Summer", got.Season)
	}
	if got.IsWeekend != true { // 2025-06-15 is a Sunday
		t.Error("expected weekend")
	}
	if got.TimeOfDay != "" {
		t.Errorf("date-only input has no time of day, got %q", got.TimeOfDay)
	}
}

func TestFromManualValidation(t *testing.T) {
	tests := []struct {
		desc  string
		entry ManualEntry
		field string
	}{
		{"bad date", ManualEntry{Date: "15/06/2025", DistanceKm: 5, MovingTime: 1500}, "date"},
		{"missing distance", ManualEntry{Date: "2025-06-15", MovingTime: 1500}, "distance"},
		{"missing time", ManualEntry{Date: "2025-06-15", DistanceKm: 5}, "moving_time"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := FromManual(tt.entry, Options{})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, verr.Field)
			}
		})
	}
}

func TestSeasonBoundaries(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.February, "Winter"},
		{time.March, "Spring"},
		{time.May, "Spring"},
		{time.June, "Summer"},
		{time.August, "Summer"},
		{time.September, "Fall"},
		{time.November, "Fall"},
		{time.December, "Winter"},
	}
	for _, tt := range tests {
		if got := season(tt.month); got != tt.want {
			t.Errorf("season(%v) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestDayNoTimezoneShift(t *testing.T) {
	a := &Activity{Date: "2025-01-01"}
	d := a.Day()
	if d.Year() != 2025 || d.Month() != time.January || d.Day() != 1 {
		t.Errorf("Day() shifted the date: %v", d)
	}
}
