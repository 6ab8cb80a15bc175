package utils

import (
	"testing"
	"time"
)

func TestISODate(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 2024-06-21 02:00 at UTC+10 is still 2024-06-20 in UTC
	ts := time.Date(2024, 6, 21, 2, 0, 0, 0, loc)

	if got := ISODate(ts); got != "2024-06-20" {
		t.Errorf("Expected 2024-06-20, got %s", got)
	}
}

func TestClockString(t *testing.T) {
	if got := ClockString(time.Time{}); got != "" {
		t.Errorf("Expected empty string for zero time, got %q", got)
	}

	ts := time.Date(2024, 6, 20, 3, 4, 5, 999, time.UTC)
	if got := ClockString(ts); got != "03:04:05" {
		t.Errorf("Expected 03:04:05, got %s", got)
	}
}

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2024-06-20")
	if err != nil {
		t.Fatalf("ParseISODate returned error: %v", err)
	}
	if !d.Equal(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected date %v", d)
	}

	if _, err := ParseISODate("20/06/2024"); err == nil {
		t.Error("Expected error for malformed date")
	}
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, 6, 20, 23, 59, 59, 0, time.UTC)
	if got := DateOnly(ts); !got.Equal(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected midnight, got %v", got)
	}
}
