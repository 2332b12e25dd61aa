// Package strava implements methods to fetch athlete activities from the
// Strava API.
package strava

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/lildude/runboard/internal/client"
	"golang.org/x/oauth2"
)

var (
	BaseURL     = "https://www.strava.com/api/v3"
	OauthConfig = &oauth2.Config{
		ClientID:     os.Getenv("STRAVA_CLIENT_ID"),
		ClientSecret: os.Getenv("STRAVA_CLIENT_SECRET"),
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://www.strava.com/oauth/authorize",
			TokenURL: "https://www.strava.com/oauth/token",
		},
		Scopes: []string{"activity:read_all"},
	}
)

// SummaryActivity holds only the fields we want from the Strava API for an
// activity in the athlete's activity list.
type SummaryActivity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	StartDate          time.Time `json:"start_date"`
	Distance           float64   `json:"distance"`
	MovingTime         int       `json:"moving_time"`
	ElapsedTime        int       `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	AverageSpeed       float64   `json:"average_speed"`
	MaxSpeed           float64   `json:"max_speed"`
	AverageHeartrate   float64   `json:"average_heartrate"`
	MaxHeartrate       float64   `json:"max_heartrate"`
	SufferScore        float64   `json:"suffer_score"`
	KudosCount         int       `json:"kudos_count"`
	StartLatlng        []float64 `json:"start_latlng"`
	EndLatlng          []float64 `json:"end_latlng"`
	LocationCity       string    `json:"location_city"`
	LocationState      string    `json:"location_state"`
	LocationCountry    string    `json:"location_country"`
	AverageTemp        float64   `json:"average_temp"`
	GearID             string    `json:"gear_id"`
}

// IsRun reports whether the activity is a run. Strava sets one or both of
// type and sport_type depending on the API vintage of the activity.
func (a *SummaryActivity) IsRun() bool {
	return a.Type == "Run" || a.SportType == "Run"
}

// ListActivities returns one page of the athlete's activities, newest first.
func ListActivities(ctx context.Context, c *client.Client, page, perPage int) ([]SummaryActivity, error) {
	var activities []SummaryActivity
	path := fmt.Sprintf("/api/v3/athlete/activities?per_page=%d&page=%d", perPage, page)
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating list activities request: %w", err)
	}

	resp, err := c.Do(req, &activities)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("listing activities page %d: %w", page, err)
	}

	return activities, nil
}

// ActivitiesBetween returns the athlete's activities that started within the
// given window. Used to look up a single day's run when backfilling.
func ActivitiesBetween(ctx context.Context, c *client.Client, after, before time.Time) ([]SummaryActivity, error) {
	var activities []SummaryActivity
	q := url.Values{}
	q.Set("after", fmt.Sprintf("%d", after.Unix()))
	q.Set("before", fmt.Sprintf("%d", before.Unix()))
	q.Set("per_page", "30")
	req, err := c.NewRequest(ctx, http.MethodGet, "/api/v3/athlete/activities?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating activities request: %w", err)
	}

	resp, err := c.Do(req, &activities)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("getting activities between %s and %s: %w",
			after.Format("2006-01-02"), before.Format("2006-01-02"), err)
	}

	return activities, nil
}
