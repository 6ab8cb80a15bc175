// Package daylight computes per-location daylight duration for a calendar
// date. A Calculator tries an ordered chain of Sources (the remote time
// service, then the local solar engine) and applies a PolarPolicy when the
// sun never crosses the horizon.
package daylight

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Location is one catalog entry.
type Location struct {
	Name       string
	Country    string
	Latitude   float64
	Longitude  float64
	Population int64
	Continent  string
	Region     string
}

// Status is the outcome of a daylight computation.
type Status string

const (
	StatusSuccess    Status = "success"
	StatusPolarDay   Status = "polar_day"
	StatusPolarNight Status = "polar_night"

	errorPrefix = "error:"
)

// ErrorStatus builds an error:<message> status.
func ErrorStatus(msg string) Status {
	return Status(errorPrefix + msg)
}

// IsError reports whether s is an error:<message> status.
func (s Status) IsError() bool {
	return strings.HasPrefix(string(s), errorPrefix)
}

// IsPolar reports whether s is polar_day or polar_night.
func (s Status) IsPolar() bool {
	return s == StatusPolarDay || s == StatusPolarNight
}

// Result is the daylight computed for one location and date. Zero time
// values stand for "no value" (error results carry no sunrise or sunset).
type Result struct {
	Date          time.Time
	Sunrise       time.Time
	Sunset        time.Time
	SolarNoon     time.Time
	Dawn          time.Time
	Dusk          time.Time
	DaylightHours float64
	DayLength     string
	Status        Status
	Source        string
}

// FormatDayLength renders hours as H:MM:SS. Minutes and seconds are
// truncated, never rounded, so 16.999999999 becomes 16:59:59.
func FormatDayLength(hours float64) string {
	if hours < 0 || math.IsNaN(hours) {
		hours = 0
	}
	h := int(hours)
	frac := hours - float64(h)
	minutes := frac * 60
	m := int(minutes)
	s := int(math.Mod(minutes, 1) * 60)
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

func successResult(date time.Time, t Times, source string) Result {
	hours := t.Sunset.Sub(t.Sunrise).Hours()
	return Result{
		Date:          date,
		Sunrise:       t.Sunrise,
		Sunset:        t.Sunset,
		SolarNoon:     t.SolarNoon,
		Dawn:          t.Dawn,
		Dusk:          t.Dusk,
		DaylightHours: hours,
		DayLength:     FormatDayLength(hours),
		Status:        StatusSuccess,
		Source:        source,
	}
}

func polarResult(date time.Time, status Status, source string) Result {
	r := Result{Date: date, Status: status, Source: source}
	switch status {
	case StatusPolarDay:
		r.Sunrise = date
		r.Sunset = date.Add(24*time.Hour - time.Second)
		r.DaylightHours = 24.0
	default:
		noon := date.Add(12 * time.Hour)
		r.Sunrise = noon
		r.Sunset = noon
		r.DaylightHours = 0.0
	}
	r.DayLength = FormatDayLength(r.DaylightHours)
	return r
}

func errorResult(date time.Time, err error, source string) Result {
	return Result{
		Date:          date,
		DaylightHours: 0.0,
		DayLength:     FormatDayLength(0),
		Status:        ErrorStatus(err.Error()),
		Source:        source,
	}
}
