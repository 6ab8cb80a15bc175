package daylight

import (
	"testing"
	"time"
)

func TestLatitudePolicy(t *testing.T) {
	p := LatitudePolicy{Threshold: DefaultPolarThreshold}

	tests := []struct {
		latitude float64
		want     Status
		ok       bool
	}{
		{60, "", false},
		{60.0001, StatusPolarDay, true},
		{89.9, StatusPolarDay, true},
		{-60, "", false},
		{-60.0001, StatusPolarNight, true},
		{0, "", false},
	}

	for _, tt := range tests {
		got, ok := p.Classify(solstice, tt.latitude)
		if ok != tt.ok || got != tt.want {
			t.Errorf("latitude %f: expected (%s, %v), got (%s, %v)", tt.latitude, tt.want, tt.ok, got, ok)
		}
	}
}

func TestDeclinationPolicy(t *testing.T) {
	p := DeclinationPolicy{}
	dec21 := time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		latitude float64
		want     Status
	}{
		{"arctic june", solstice, 75, StatusPolarDay},
		{"antarctic june", solstice, -75, StatusPolarNight},
		{"arctic december", dec21, 75, StatusPolarNight},
		{"antarctic december", dec21, -75, StatusPolarDay},
		{"inside circle edge june", solstice, 62, StatusPolarDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Classify(tt.date, tt.latitude)
			if !ok {
				t.Fatal("Expected policy to classify")
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewPolicy(t *testing.T) {
	for _, name := range []string{"", PolicyLatitude, PolicyDeclination} {
		p, err := NewPolicy(name)
		if err != nil {
			t.Fatalf("NewPolicy(%q) returned error: %v", name, err)
		}
		if name != "" && p.Name() != name {
			t.Errorf("Expected %s, got %s", name, p.Name())
		}
	}
	if _, err := NewPolicy("vibes"); err == nil {
		t.Error("Expected error for unknown policy")
	}
}
