package daylight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/devskill-org/daylight/solar"
	"github.com/devskill-org/daylight/utils"
)

// Calculator computes a Result for a coordinate and date. With the remote
// source enabled it asks the remote service first and falls back to the local
// source when the remote is unavailable. There are no retries.
type Calculator struct {
	local   Source
	remote  Source
	policy  PolarPolicy
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithRemote sets the source tried before the local one.
func WithRemote(remote Source) Option {
	return func(c *Calculator) { c.remote = remote }
}

// WithPolicy sets the polar day/night policy. The default is
// LatitudePolicy with a 60 degree threshold.
func WithPolicy(p PolarPolicy) Option {
	return func(c *Calculator) { c.policy = p }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) { c.logger = logger }
}

// WithMetrics enables metrics collection.
func WithMetrics(m *Metrics) Option {
	return func(c *Calculator) { c.metrics = m }
}

// NewCalculator returns a Calculator that uses local as its last-resort source.
func NewCalculator(local Source, opts ...Option) *Calculator {
	c := &Calculator{
		local:  local,
		policy: LatitudePolicy{Threshold: DefaultPolarThreshold},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the configured polar policy.
func (c *Calculator) Policy() PolarPolicy {
	return c.policy
}

// Compute returns the daylight for (latitude, longitude) on the calendar date
// of date. name is only used in logs. Per-record failures are reported in
// the returned Result's status and never returned as errors.
func (c *Calculator) Compute(ctx context.Context, latitude, longitude float64, date time.Time, name string, useRemote bool) Result {
	date = utils.DateOnly(date)
	logger := c.logger.With("location", name, "lat", latitude, "lng", longitude)

	if err := validateCoordinates(latitude, longitude); err != nil {
		logger.Warn("invalid coordinates", "error", err)
		r := errorResult(date, err, "")
		c.metrics.result("", r.Status)
		return r
	}

	sources := []Source{c.local}
	if useRemote && c.remote != nil {
		sources = []Source{c.remote, c.local}
	}

	q := Query{Latitude: latitude, Longitude: longitude, Date: date, Name: name}

	var lastErr error
	for _, src := range sources {
		start := time.Now()
		times, err := src.Lookup(ctx, q)
		c.metrics.lookup(src.Name(), time.Since(start))

		r, done := c.resolve(logger, q, src.Name(), times, err)
		if done {
			c.metrics.result(src.Name(), r.Status)
			return r
		}
		c.metrics.fallback(src.Name())
		lastErr = err
	}

	r := errorResult(date, fmt.Errorf("no source available: %w", lastErr), "")
	logger.Warn("daylight computation failed", "status", r.Status)
	c.metrics.result("", r.Status)
	return r
}

// resolve turns one source answer into a Result. done is false when the
// source was unavailable and the next one should be tried.
func (c *Calculator) resolve(logger *slog.Logger, q Query, source string, times Times, err error) (Result, bool) {
	if err == nil {
		r := successResult(q.Date, times, source)
		logger.Debug("daylight computed", "source", source, "hours", r.DaylightHours)
		return r, true
	}

	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		logger.Warn("source unavailable, falling back", "source", source, "error", err)
		return Result{}, false
	}

	if errors.Is(err, solar.ErrNoSolution) {
		if status, ok := c.policy.Classify(q.Date, q.Latitude); ok {
			logger.Info("sun does not cross the horizon", "source", source, "policy", c.policy.Name(), "status", status)
			return polarResult(q.Date, status, source), true
		}
	}

	r := errorResult(q.Date, err, source)
	logger.Warn("daylight computation failed", "source", source, "status", r.Status)
	return r, true
}

func validateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %f", latitude)
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %f", longitude)
	}
	return nil
}
