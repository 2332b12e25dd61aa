package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	// Autoloads .env file to supply environment variables
	_ "github.com/joho/godotenv/autoload"

	"golang.org/x/oauth2"

	"github.com/lildude/runboard/internal/activity"
	"github.com/lildude/runboard/internal/cache"
	"github.com/lildude/runboard/internal/client"
	"github.com/lildude/runboard/internal/dataset"
	"github.com/lildude/runboard/internal/gear"
	"github.com/lildude/runboard/internal/logger"
	"github.com/lildude/runboard/internal/store"
	"github.com/lildude/runboard/internal/strava"
)

const syncPageSize = 50

var log = logger.NewLogger()

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "sync":
		err = runSync(ctx)
	case "add":
		err = runAdd(ctx)
	case "process":
		err = runProcess(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: runboard <command>

  sync     fetch all runs from Strava and rebuild the dataset files
  add      add or replace a single activity (see ACTIVITY_* env vars)
  process  recompute the aggregates of an existing dataset file in place`)
}

// runSync pages through the athlete's Strava activities, keeps the runs and
// rebuilds the combined and per-year dataset files from scratch.
func runSync(ctx context.Context) error {
	sc, err := stravaClient(ctx)
	if err != nil {
		return err
	}

	opts, err := normalizeOptions()
	if err != nil {
		return err
	}

	var runs []activity.Activity
	skipped := 0
	for page := 1; ; page++ {
		batch, err := strava.ListActivities(ctx, sc, page, syncPageSize)
		if err != nil {
			return err
		}
		for i := range batch {
			if !batch[i].IsRun() {
				continue
			}
			a, err := activity.FromStrava(&batch[i], opts)
			if err != nil {
				skipped++
				log.WithField("activity_id", batch[i].ID).Warnf("skipping activity: %s", err)
				continue
			}
			runs = append(runs, *a)
		}
		if len(batch) < syncPageSize {
			break
		}
	}
	log.Infof("fetched %d runs from Strava (%d skipped)", len(runs), skipped)

	now := time.Now().UTC()
	dir := dataDir()

	ds := dataset.Rebuild(runs, now)
	if err := store.Save(store.Path(dir), &ds); err != nil {
		return err
	}

	for year, group := range byYear(runs) {
		yds := dataset.Rebuild(group, now)
		if err := store.Save(store.PathForYear(dir, year), &yds); err != nil {
			return err
		}
	}
	log.Infof("wrote dataset files to %s", dir)

	return nil
}

// runAdd adds a single activity to a per-year dataset file, replacing any
// existing activity on the same date. The activity comes from Strava when
// credentials are available, otherwise from the ACTIVITY_* environment
// variables.
func runAdd(ctx context.Context) error {
	year, err := requiredInt("ACTIVITY_YEAR")
	if err != nil {
		return err
	}
	date, err := required("ACTIVITY_DATE")
	if err != nil {
		return err
	}

	opts, err := normalizeOptions()
	if err != nil {
		return err
	}

	var act *activity.Activity
	if hasStravaCredentials() {
		act, err = lookupStravaRun(ctx, date, opts)
	} else {
		act, err = manualActivity(date, opts)
	}
	if err != nil {
		return err
	}

	path := store.PathForYear(dataDir(), year)
	ds, err := store.Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		ds = &dataset.Dataset{}
	}

	now := time.Now().UTC()
	updated := dataset.Upsert(*ds, *act, now)
	if err := store.Save(path, &updated); err != nil {
		return err
	}
	log.Infof("saved activity %s to %s (%d activities)", date, path, updated.TotalActivities)

	return nil
}

// runProcess reloads a dataset file and recomputes its aggregates in place.
// The activities themselves are left untouched.
func runProcess(args []string) error {
	path := store.Path(dataDir())
	if len(args) > 0 {
		path = args[0]
	}

	ds, err := store.Load(path)
	if err != nil {
		return err
	}

	rebuilt := dataset.Rebuild(ds.Activities, time.Now().UTC())
	if err := store.Save(path, &rebuilt); err != nil {
		return err
	}
	log.Infof("recomputed aggregates for %d activities in %s", rebuilt.TotalActivities, path)

	return nil
}

// stravaClient builds an authenticated API client. The auth token comes from
// the redis cache when one is configured, falling back to a refresh token
// from the environment, and refreshed tokens are written back to the cache.
func stravaClient(ctx context.Context) (*client.Client, error) {
	var (
		c   cache.Cache
		err error
	)
	if addr := os.Getenv("REDIS_URL"); addr != "" {
		c, err = cache.NewRedisCache(ctx, addr)
		if err != nil {
			return nil, err
		}
	}

	token := &oauth2.Token{}
	if c != nil {
		token, err = c.GetToken(ctx)
		if err != nil {
			return nil, err
		}
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		token = &oauth2.Token{RefreshToken: os.Getenv("STRAVA_REFRESH_TOKEN")}
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, fmt.Errorf("no Strava credentials: set REDIS_URL or STRAVA_REFRESH_TOKEN")
	}

	ts := strava.OauthConfig.TokenSource(ctx, token)
	newToken, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("refreshing token: %w", err)
	}
	if newToken.AccessToken != token.AccessToken && c != nil {
		if err := c.SetToken(ctx, newToken); err != nil {
			return nil, err
		}
		log.Info("updated cached token")
	}

	surl, _ := url.Parse(strava.BaseURL)

	return client.NewClient(surl, oauth2.NewClient(ctx, ts)), nil
}

// lookupStravaRun finds the run that started on the given date.
func lookupStravaRun(ctx context.Context, date string, opts activity.Options) (*activity.Activity, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid ACTIVITY_DATE %q: expected YYYY-MM-DD", date)
	}

	sc, err := stravaClient(ctx)
	if err != nil {
		return nil, err
	}

	batch, err := strava.ActivitiesBetween(ctx, sc, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for i := range batch {
		if !batch[i].IsRun() {
			continue
		}
		return activity.FromStrava(&batch[i], opts)
	}

	return nil, fmt.Errorf("no run found on Strava for %s", date)
}

// manualActivity builds an activity from the ACTIVITY_* environment variables.
func manualActivity(date string, opts activity.Options) (*activity.Activity, error) {
	distance, err := requiredFloat("ACTIVITY_DISTANCE")
	if err != nil {
		return nil, err
	}
	movingTime, err := requiredInt("ACTIVITY_TIME")
	if err != nil {
		return nil, err
	}

	entry := activity.ManualEntry{
		Date:             date,
		DistanceKm:       distance,
		MovingTime:       movingTime,
		ElevationGain:    envFloat("ACTIVITY_ELEVATION"),
		AverageHeartrate: envInt("ACTIVITY_HR"),
		MaxHeartrate:     envInt("ACTIVITY_MAX_HR"),
	}

	return activity.FromManual(entry, opts)
}

func normalizeOptions() (activity.Options, error) {
	names, err := gear.LoadMap(os.Getenv("GEAR_FILE"))
	if err != nil {
		return activity.Options{}, err
	}
	return activity.Options{GearNames: names}, nil
}

func hasStravaCredentials() bool {
	return os.Getenv("REDIS_URL") != "" || os.Getenv("STRAVA_REFRESH_TOKEN") != ""
}

func byYear(acts []activity.Activity) map[int][]activity.Activity {
	groups := make(map[int][]activity.Activity)
	for _, a := range acts {
		groups[a.Year] = append(groups[a.Year], a)
	}
	return groups
}

func dataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}

func required(name string) (string, error) {
	v := os.Getenv(name)
	if v == "" {
		return "", fmt.Errorf("missing required environment variable %s", name)
	}
	return v, nil
}

func requiredInt(name string) (int, error) {
	v, err := required(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: expected an integer", name, v)
	}
	return n, nil
}

func requiredFloat(name string) (float64, error) {
	v, err := required(name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: expected a number", name, v)
	}
	return f, nil
}

func envInt(name string) int {
	n, _ := strconv.Atoi(os.Getenv(name))
	return n
}

func envFloat(name string) float64 {
	f, _ := strconv.ParseFloat(os.Getenv(name), 64)
	return f
}
