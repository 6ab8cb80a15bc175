// Package utils provides utility functions for the daylight application.
package utils //nolint:revive // utils is a common and acceptable package name

import "time"

// ISODate formats the calendar date of t as YYYY-MM-DD in UTC.
func ISODate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ClockString formats t as a HH:MM:SS UTC wall clock, or "" for the zero time.
func ClockString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("15:04:05")
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseISODate parses a YYYY-MM-DD date as midnight UTC.
func ParseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
