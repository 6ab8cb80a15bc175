package daylight

import (
	"context"
	"fmt"
	"time"

	"github.com/devskill-org/daylight/solar"
)

// Times is the set of solar events a Source reports for one day.
type Times = solar.Times

// Source names used in Result.Source and metrics labels.
const (
	SourceAPI   = "api"
	SourceLocal = "local"
)

// Query identifies one daylight lookup.
type Query struct {
	Latitude  float64
	Longitude float64
	Date      time.Time
	Name      string
}

// Source is a capability that turns a Query into sunrise and sunset.
//
// Implementations return an error wrapping solar.ErrNoSolution when the sun
// does not cross the horizon, and an *UnavailableError when the source cannot
// answer right now and the next source should be tried.
type Source interface {
	Name() string
	Lookup(ctx context.Context, q Query) (Times, error)
}

// UnavailableError marks a transient source failure.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s source unavailable: %v", e.Source, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// LocalSource computes solar events with a solar.Engine. It never reports
// itself unavailable.
type LocalSource struct {
	engine solar.Engine
}

// NewLocalSource returns a LocalSource backed by engine.
func NewLocalSource(engine solar.Engine) *LocalSource {
	return &LocalSource{engine: engine}
}

func (s *LocalSource) Name() string { return SourceLocal }

func (s *LocalSource) Lookup(_ context.Context, q Query) (Times, error) {
	return s.engine.RiseSet(q.Date, q.Latitude, q.Longitude)
}
