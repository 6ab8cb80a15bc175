// Package analysis wires the catalog, the daylight calculator, the ranker and
// the report writers into one run.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/devskill-org/daylight/catalog"
	"github.com/devskill-org/daylight/daylight"
	"github.com/devskill-org/daylight/ranking"
	"github.com/devskill-org/daylight/report"
	"github.com/devskill-org/daylight/solar"
	"github.com/devskill-org/daylight/sunapi"
)

// Outcome is what a run produced.
type Outcome struct {
	Date   time.Time
	Ranked []ranking.Entry // top N, as written to the CSV
	All    []ranking.Entry // every enriched location in catalog order
}

// Analyzer runs the daylight pipeline for one configuration.
type Analyzer struct {
	config     *Config
	logger     *slog.Logger
	date       time.Time
	calculator *daylight.Calculator
	metrics    *daylight.Metrics
}

// NewAnalyzer builds the calculator chain described by config: a cached local
// engine and, when use_api is set, a cached and rate-limited remote client.
func NewAnalyzer(config *Config, logger *slog.Logger) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	date, err := config.TargetDate()
	if err != nil {
		return nil, err
	}

	engine, err := solar.NewEngine(config.Engine)
	if err != nil {
		return nil, err
	}

	policy, err := daylight.NewPolicy(config.PolarPolicy)
	if err != nil {
		return nil, err
	}

	if policy.Name() == daylight.PolicyLatitude && date.Month() != time.June {
		logger.Warn("latitude polar policy assumes a June date; consider polar_policy=declination",
			"date", date.Format(time.DateOnly))
	}

	metrics := daylight.NewMetrics()

	var local daylight.Source = daylight.NewLocalSource(engine)
	if config.CacheSize > 0 {
		local = daylight.NewCachedSource(local, config.CacheSize, metrics)
	}

	opts := []daylight.Option{
		daylight.WithPolicy(policy),
		daylight.WithLogger(logger),
		daylight.WithMetrics(metrics),
	}

	if config.UseAPI {
		client := sunapi.NewClientWithHTTPClient(&http.Client{Timeout: config.APITimeout}, config.UserAgent)
		client.SetBaseURL(config.APIURL)

		var remote daylight.Source = daylight.NewRemoteSource(client, daylight.NewRateLimiter(config.RateLimit, daylight.SystemClock()))
		if config.CacheSize > 0 {
			remote = daylight.NewCachedSource(remote, config.CacheSize, metrics)
		}
		opts = append(opts, daylight.WithRemote(remote))
	}

	return &Analyzer{
		config:     config,
		logger:     logger,
		date:       date,
		calculator: daylight.NewCalculator(local, opts...),
		metrics:    metrics,
	}, nil
}

// Date returns the calendar date being analysed.
func (a *Analyzer) Date() time.Time {
	return a.date
}

// Metrics returns the run metrics.
func (a *Analyzer) Metrics() *daylight.Metrics {
	return a.metrics
}

// Locations loads the configured catalog, drops cities below min_population,
// removes duplicates and keeps the first sample_size entries when set.
func (a *Analyzer) Locations() ([]daylight.Location, error) {
	var (
		locations []daylight.Location
		err       error
	)

	if a.config.CatalogFile != "" {
		var skipped int
		locations, skipped, err = catalog.LoadFile(a.config.CatalogFile)
		if err != nil {
			return nil, err
		}
		if skipped > 0 {
			a.logger.Warn("skipped invalid catalog rows", "file", a.config.CatalogFile, "skipped", skipped)
		}
	} else {
		locations, err = catalog.Load(a.config.Catalog)
		if err != nil {
			return nil, err
		}
	}

	loaded := len(locations)
	locations = catalog.Dedupe(catalog.FilterMinPopulation(locations, a.config.MinPopulation))
	if n := a.config.SampleSize; n > 0 && n < len(locations) {
		locations = locations[:n]
	}
	a.logger.Info("catalog loaded",
		"catalog", a.catalogName(),
		"loaded", loaded,
		"kept", len(locations),
		"min_population", a.config.MinPopulation,
		"sample_size", a.config.SampleSize)

	return locations, nil
}

// Compute returns the daylight for a single coordinate on the analysis date.
func (a *Analyzer) Compute(ctx context.Context, latitude, longitude float64, name string) daylight.Result {
	return a.calculator.Compute(ctx, latitude, longitude, a.date, name, a.config.UseAPI)
}

// Enrich computes a Result for every location, one at a time, in input order.
// Per-record failures are carried in each Result's status; only context
// cancellation stops the batch.
func (a *Analyzer) Enrich(ctx context.Context, locations []daylight.Location) ([]ranking.Entry, error) {
	entries := make([]ranking.Entry, 0, len(locations))
	for i, loc := range locations {
		if err := ctx.Err(); err != nil {
			return entries, err
		}

		a.logger.Info("processing location",
			"index", i+1,
			"total", len(locations),
			"location", loc.Name,
			"country", loc.Country)

		entries = append(entries, ranking.Entry{
			Location: loc,
			Result:   a.Compute(ctx, loc.Latitude, loc.Longitude, loc.Name),
		})
	}
	return entries, nil
}

// Run loads, enriches and ranks the catalog, then writes the CSV and, when
// configured, the metrics textfile. Write failures are returned.
func (a *Analyzer) Run(ctx context.Context) (*Outcome, error) {
	start := time.Now()

	locations, err := a.Locations()
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}

	all, err := a.Enrich(ctx, locations)
	if err != nil {
		return nil, fmt.Errorf("enrichment interrupted after %d of %d locations: %w", len(all), len(locations), err)
	}

	ranked := ranking.Rank(all, a.config.Top)

	if err := report.WriteCSV(a.config.Output, ranked); err != nil {
		return nil, err
	}
	a.logger.Info("results written", "output", a.config.Output, "rows", len(ranked))

	if a.config.MetricsFile != "" {
		if err := a.metrics.WriteToTextfile(a.config.MetricsFile); err != nil {
			return nil, fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	a.logger.Info("analysis complete",
		"date", a.date.Format(time.DateOnly),
		"locations", len(all),
		"duration", time.Since(start).Round(time.Millisecond))

	return &Outcome{Date: a.date, Ranked: ranked, All: all}, nil
}

func (a *Analyzer) catalogName() string {
	if a.config.CatalogFile != "" {
		return a.config.CatalogFile
	}
	return a.config.Catalog
}
