package daylight

import (
	"fmt"
	"time"

	"github.com/devskill-org/daylight/solar"
)

// PolarPolicy decides what a "sun never crosses the horizon" day means for a
// latitude and date. ok is false when the policy has no answer, in which case
// the lookup is reported as an error.
type PolarPolicy interface {
	Name() string
	Classify(date time.Time, latitude float64) (status Status, ok bool)
}

// Policy names accepted by NewPolicy.
const (
	PolicyLatitude    = "latitude"
	PolicyDeclination = "declination"
)

// DefaultPolarThreshold is the latitude beyond which LatitudePolicy applies.
const DefaultPolarThreshold = 60.0

// LatitudePolicy maps latitude > Threshold to polar day and latitude <
// -Threshold to polar night. It is a heuristic calibrated for the June
// solstice and gives the wrong answer for dates near the December solstice.
type LatitudePolicy struct {
	Threshold float64
}

func (LatitudePolicy) Name() string { return PolicyLatitude }

func (p LatitudePolicy) Classify(_ time.Time, latitude float64) (Status, bool) {
	switch {
	case latitude > p.Threshold:
		return StatusPolarDay, true
	case latitude < -p.Threshold:
		return StatusPolarNight, true
	default:
		return "", false
	}
}

// DeclinationPolicy compares the solar declination for the date with the
// co-latitude, so it works for any date and either hemisphere.
type DeclinationPolicy struct{}

func (DeclinationPolicy) Name() string { return PolicyDeclination }

func (DeclinationPolicy) Classify(date time.Time, latitude float64) (Status, bool) {
	switch solar.CircumpolarState(date, latitude) {
	case solar.AlwaysUp:
		return StatusPolarDay, true
	case solar.AlwaysDown:
		return StatusPolarNight, true
	}

	// The engine found no solution just inside the circumpolar boundary.
	// Summer hemisphere means the sun stays up.
	decl := solar.Declination(solar.DayOfYear(date))
	if latitude == 0 || decl == 0 {
		return "", false
	}
	if (latitude > 0) == (decl > 0) {
		return StatusPolarDay, true
	}
	return StatusPolarNight, true
}

// NewPolicy returns the policy registered under name.
func NewPolicy(name string) (PolarPolicy, error) {
	switch name {
	case "", PolicyLatitude:
		return LatitudePolicy{Threshold: DefaultPolarThreshold}, nil
	case PolicyDeclination:
		return DeclinationPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown polar policy %q, must be one of: %s, %s", name, PolicyLatitude, PolicyDeclination)
	}
}
