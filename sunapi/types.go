package sunapi

import (
	"encoding/json"
	"time"
)

// Location represents a geographic location
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Query represents the parameters of a sun times request
type Query struct {
	Location Location
	Date     time.Time
}

// envelope is the top-level payload. results is an object on success and an
// empty string on failure, so it is decoded after status is checked.
type envelope struct {
	Results json.RawMessage `json:"results"`
	Status  string          `json:"status"`
	TzID    string          `json:"tzid,omitempty"`
}

// SunTimes holds the solar events of one day as returned with formatted=0
type SunTimes struct {
	Sunrise                   time.Time `json:"sunrise"`
	Sunset                    time.Time `json:"sunset"`
	SolarNoon                 time.Time `json:"solar_noon"`
	DayLengthSeconds          int64     `json:"day_length"`
	CivilTwilightBegin        time.Time `json:"civil_twilight_begin"`
	CivilTwilightEnd          time.Time `json:"civil_twilight_end"`
	NauticalTwilightBegin     time.Time `json:"nautical_twilight_begin"`
	NauticalTwilightEnd       time.Time `json:"nautical_twilight_end"`
	AstronomicalTwilightBegin time.Time `json:"astronomical_twilight_begin"`
	AstronomicalTwilightEnd   time.Time `json:"astronomical_twilight_end"`
}

// DayLength returns the reported day length
func (s *SunTimes) DayLength() time.Duration {
	return time.Duration(s.DayLengthSeconds) * time.Second
}

// Status values reported in Response.Status
const (
	StatusOK             = "OK"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusInvalidDate    = "INVALID_DATE"
	StatusUnknownError   = "UNKNOWN_ERROR"
	StatusInvalidTzID    = "INVALID_TZID"
)

// noEventSentinel is what the API reports for a sunrise or sunset that does
// not happen on the requested date.
var noEventSentinel = time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC)

func isNoEvent(t time.Time) bool {
	return t.Equal(noEventSentinel)
}
