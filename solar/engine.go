package solar

import (
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"
)

// Times holds the solar events of one day. Sunrise and Sunset are always set
// when an Engine returns without error; the twilight markers may be zero when
// the engine does not provide them.
type Times struct {
	Sunrise   time.Time
	Sunset    time.Time
	SolarNoon time.Time
	Dawn      time.Time // civil dawn
	Dusk      time.Time // civil dusk
}

// DayLength returns the sunrise-to-sunset span.
func (t Times) DayLength() time.Duration {
	return t.Sunset.Sub(t.Sunrise)
}

func (t Times) validate() error {
	if t.Sunrise.IsZero() || t.Sunset.IsZero() {
		return ErrNoSolution
	}
	if !t.Sunset.After(t.Sunrise) || t.DayLength() > 24*time.Hour {
		return ErrNoSolution
	}
	return nil
}

// Engine turns a calendar date and coordinate into sunrise and sunset
// instants. Implementations return ErrNoSolution when the sun does not cross
// the horizon on that date.
type Engine interface {
	Name() string
	RiseSet(date time.Time, latitude, longitude float64) (Times, error)
}

// Engine names accepted by NewEngine.
const (
	EngineSuncalc = "suncalc"
	EngineSunrise = "sunrise"
)

// NewEngine returns the engine registered under name.
func NewEngine(name string) (Engine, error) {
	switch name {
	case "", EngineSuncalc:
		return SuncalcEngine{}, nil
	case EngineSunrise:
		return SunriseEngine{}, nil
	default:
		return nil, fmt.Errorf("unknown solar engine %q, must be one of: %s, %s", name, EngineSuncalc, EngineSunrise)
	}
}

// localNoon approximates the UTC instant of local mean noon on date so that
// engines anchored on an instant pick that calendar day's transit.
func localNoon(date time.Time, longitude float64) time.Time {
	y, m, d := date.Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return noon.Add(-time.Duration(longitude / 15 * float64(time.Hour)))
}

// SuncalcEngine computes solar events with the suncalc port of the
// mourner/suncalc algorithms.
type SuncalcEngine struct{}

func (SuncalcEngine) Name() string { return EngineSuncalc }

func (SuncalcEngine) RiseSet(date time.Time, latitude, longitude float64) (Times, error) {
	// suncalc yields NaN-derived instants instead of an error near the poles
	if _, ok := SunriseHourAngle(date, latitude); !ok {
		return Times{}, ErrNoSolution
	}

	times := suncalc.GetTimes(localNoon(date, longitude), latitude, longitude)
	t := Times{
		Sunrise:   times["sunrise"].Value.UTC(),
		Sunset:    times["sunset"].Value.UTC(),
		SolarNoon: times["solarNoon"].Value.UTC(),
		Dawn:      times["dawn"].Value.UTC(),
		Dusk:      times["dusk"].Value.UTC(),
	}
	if err := t.validate(); err != nil {
		return Times{}, err
	}
	return t, nil
}

// SunriseEngine computes solar events with the go-sunrise implementation of
// the sunrise equation.
type SunriseEngine struct{}

func (SunriseEngine) Name() string { return EngineSunrise }

func (SunriseEngine) RiseSet(date time.Time, latitude, longitude float64) (Times, error) {
	y, m, d := date.Date()
	rise, set := sunrise.SunriseSunset(latitude, longitude, y, m, d)
	t := Times{
		Sunrise: rise.UTC(),
		Sunset:  set.UTC(),
	}
	if err := t.validate(); err != nil {
		return Times{}, err
	}
	t.SolarNoon = t.Sunrise.Add(t.DayLength() / 2)
	return t, nil
}
