// Package solar computes sunrise, sunset and related solar events for a
// coordinate and calendar date.
//
// The package exposes the plain day-of-year / declination / hour-angle
// formulas used to decide whether the sun crosses the horizon at all, and
// Engine implementations that turn a date and coordinate into concrete
// sunrise and sunset instants.
package solar

import (
	"errors"
	"math"
	"time"
)

// StandardAltitude is the sun's altitude in degrees at official sunrise and
// sunset: atmospheric refraction plus the apparent solar radius.
const StandardAltitude = -0.833

// ErrNoSolution is returned when the sun never reaches the horizon on the
// requested date, i.e. the hour-angle equation has no real solution.
var ErrNoSolution = errors.New("sun never reaches the horizon on this date")

// Circumpolar describes whether the sun stays on one side of the horizon for
// a whole day.
type Circumpolar int

const (
	// NotCircumpolar means the sun both rises and sets.
	NotCircumpolar Circumpolar = iota
	// AlwaysUp means the sun never sets (polar day).
	AlwaysUp
	// AlwaysDown means the sun never rises (polar night).
	AlwaysDown
)

func (c Circumpolar) String() string {
	switch c {
	case AlwaysUp:
		return "always_up"
	case AlwaysDown:
		return "always_down"
	default:
		return "not_circumpolar"
	}
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// DayOfYear returns the 1-based ordinal day of date.
func DayOfYear(date time.Time) int {
	return date.YearDay()
}

// Declination returns the solar declination in degrees for the given ordinal
// day using Cooper's approximation.
func Declination(dayOfYear int) float64 {
	return 23.44 * math.Sin(toRad(360.0/365.0*float64(284+dayOfYear)))
}

// HourAngleCos returns the cosine of the hour angle at which the sun's centre
// reaches altitude (degrees) for the given latitude and declination. Values
// outside [-1, 1] mean the sun never reaches that altitude.
func HourAngleCos(latitude, declination, altitude float64) float64 {
	lat := toRad(latitude)
	dec := toRad(declination)
	return (math.Sin(toRad(altitude)) - math.Sin(lat)*math.Sin(dec)) / (math.Cos(lat) * math.Cos(dec))
}

// SunriseHourAngle returns the sunrise hour angle in degrees at latitude on
// date. ok is false when the sun does not rise or does not set that day.
func SunriseHourAngle(date time.Time, latitude float64) (angle float64, ok bool) {
	cosH := HourAngleCos(latitude, Declination(DayOfYear(date)), StandardAltitude)
	if cosH < -1 || cosH > 1 || math.IsNaN(cosH) {
		return 0, false
	}
	return toDeg(math.Acos(cosH)), true
}

// DayLengthHours approximates the time between sunrise and sunset. It returns
// 24 or 0 for circumpolar days.
func DayLengthHours(date time.Time, latitude float64) float64 {
	switch CircumpolarState(date, latitude) {
	case AlwaysUp:
		return 24
	case AlwaysDown:
		return 0
	}
	angle, _ := SunriseHourAngle(date, latitude)
	return 2 * angle / 15
}

// CircumpolarState reports whether the sun stays above or below the horizon
// all day. It compares the declination against the co-latitude, corrected for
// StandardAltitude, which is equivalent to the hour-angle cosine leaving
// [-1, 1].
func CircumpolarState(date time.Time, latitude float64) Circumpolar {
	cosH := HourAngleCos(latitude, Declination(DayOfYear(date)), StandardAltitude)
	switch {
	case cosH < -1:
		return AlwaysUp
	case cosH > 1:
		return AlwaysDown
	default:
		return NotCircumpolar
	}
}
