package daylight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devskill-org/daylight/solar"
	"github.com/devskill-org/daylight/sunapi"
)

// SunTimesClient is the subset of *sunapi.Client used by RemoteSource.
type SunTimesClient interface {
	GetSunTimes(ctx context.Context, q sunapi.Query) (*sunapi.SunTimes, error)
}

// RemoteSource asks the remote time service for sun times. Every request
// first waits on the shared rate limiter.
type RemoteSource struct {
	client  SunTimesClient
	limiter *RateLimiter
}

// NewRemoteSource returns a RemoteSource. A nil limiter disables throttling.
func NewRemoteSource(client SunTimesClient, limiter *RateLimiter) *RemoteSource {
	return &RemoteSource{client: client, limiter: limiter}
}

func (s *RemoteSource) Name() string { return SourceAPI }

func (s *RemoteSource) Lookup(ctx context.Context, q Query) (Times, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return Times{}, &UnavailableError{Source: SourceAPI, Err: err}
		}
	}

	st, err := s.client.GetSunTimes(ctx, sunapi.Query{
		Location: sunapi.Location{Latitude: q.Latitude, Longitude: q.Longitude},
		Date:     q.Date,
	})
	switch {
	case errors.Is(err, sunapi.ErrNoSunEvent):
		return Times{}, fmt.Errorf("%w: %w", solar.ErrNoSolution, err)
	case sunapi.IsTransient(err):
		return Times{}, &UnavailableError{Source: SourceAPI, Err: err}
	case err != nil:
		return Times{}, err
	}

	if span := st.Sunset.Sub(st.Sunrise); span <= 0 || span > 24*time.Hour {
		return Times{}, &sunapi.ResponseError{Message: fmt.Sprintf("implausible day length %s", span)}
	}

	return Times{
		Sunrise:   st.Sunrise,
		Sunset:    st.Sunset,
		SolarNoon: st.SolarNoon,
		Dawn:      st.CivilTwilightBegin,
		Dusk:      st.CivilTwilightEnd,
	}, nil
}
