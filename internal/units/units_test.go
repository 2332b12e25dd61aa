package units

import (
	"math"
	"testing"
)

func TestSpeedToPace(t *testing.T) {
	tests := []struct {
		desc  string
		speed float64
		mode  PaceMode
		want  string
	}{
		{"zero speed bulk", 0, Bulk, "0:00"},
		{"zero speed manual", 0, Manual, "N/A"},
		{"negative speed bulk", -2, Bulk, "0:00"},
		{"NaN manual", math.NaN(), Manual, "N/A"},
		{"Inf bulk", math.Inf(1), Bulk, "0:00"},
		{"10 mph is 6:00", 10, Bulk, "6:00"},
		{"12 km/h is 5:00", 12, Bulk, "5:00"},
		{"8 mph is 7:30", 8, Manual, "7:30"},
		{"7 mph floors the seconds", 7, Bulk, "8:34"}, // 514.28s
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := SpeedToPace(tt.speed, tt.mode); got != tt.want {
				t.Errorf("SpeedToPace(%v, %v) = %q, want %q", tt.speed, tt.mode, got, tt.want)
			}
		})
	}
}

func TestPaceToSeconds(t *testing.T) {
	tests := []struct {
		pace string
		want int
	}{
		{"5:30", 330},
		{"0:00", 0},
		{"10:05", 605},
		{"", 0},
		{"N/A", 0},
		{"garbage", 0},
		{"5:xx", 0},
	}

	for _, tt := range tests {
		if got := PaceToSeconds(tt.pace); got != tt.want {
			t.Errorf("PaceToSeconds(%q) = %d, want %d", tt.pace, got, tt.want)
		}
	}
}

func TestSecondsToPace(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{-10, "0:00"},
		{330, "5:30"},
		{59.9, "0:59"},
		{600, "10:00"},
	}

	for _, tt := range tests {
		if got := SecondsToPace(tt.seconds); got != tt.want {
			t.Errorf("SecondsToPace(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

// The manual-add path converts km to miles and back; the round trip must stay
// within a hundredth of a kilometre.
func TestKmMilesRoundTrip(t *testing.T) {
	for _, km := range []float64{1, 5, 10, 21.1, 42.195, 0.5} {
		back := MetersToKm(KmToMiles(km) * MetersPerMile)
		if math.Abs(back-km) > 0.01 {
			t.Errorf("round trip for %v km drifted to %v", km, back)
		}
	}
}

func TestDistanceConversions(t *testing.T) {
	if got := Fixed2(MetersToMiles(1609.34)); got != "1.00" {
		t.Errorf("1609.34m = %s miles, want 1.00", got)
	}
	if got := Fixed2(MetersToKm(5000)); got != "5.00" {
		t.Errorf("5000m = %s km, want 5.00", got)
	}
	if got := MetersToFeet(100); math.Abs(got-328.084) > 1e-9 {
		t.Errorf("100m = %v feet, want 328.084", got)
	}
}
