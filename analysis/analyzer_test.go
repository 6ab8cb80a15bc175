package analysis

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/devskill-org/daylight/daylight"
)

const testCatalog = `name,country,latitude,longitude,population
Murmansk,Russia,68.9585,33.0827,295000
Singapore,Singapore,1.3521,103.8198,5850000
Sydney,Australia,-33.8688,151.2093,5312000
Hamlet,Nowhere,10,10,500
singapore,SINGAPORE,1.3521,103.8198,5850000
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newSunService answers with a no-sun-event payload north of 60 degrees, a
// fixed day for Singapore and a 503 for everything else.
func newSunService(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		lat := r.URL.Query().Get("lat")
		switch {
		case strings.HasPrefix(lat, "68."):
			_, _ = w.Write([]byte(`{"results":{"sunrise":"1970-01-01T00:00:01+00:00","sunset":"1970-01-01T00:00:01+00:00","day_length":0},"status":"OK"}`))
		case strings.HasPrefix(lat, "1.35"):
			_, _ = w.Write([]byte(`{"results":{"sunrise":"2024-06-19T22:58:00+00:00","sunset":"2024-06-20T11:28:00+00:00","solar_noon":"2024-06-20T05:13:00+00:00","day_length":45000},"status":"OK"}`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()

	catalogPath := filepath.Join(dir, "cities.csv")
	if err := os.WriteFile(catalogPath, []byte(testCatalog), 0o600); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}

	config := DefaultConfig()
	config.CatalogFile = catalogPath
	config.MinPopulation = 1000
	config.Top = 2
	config.RateLimit = 0
	config.Output = filepath.Join(dir, "out.csv")
	config.MetricsFile = filepath.Join(dir, "daylight.prom")
	return config
}

func TestNewAnalyzerInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.Engine = "sundial"
	if _, err := NewAnalyzer(config, discardLogger()); err == nil {
		t.Error("Expected error for invalid configuration")
	}
}

func TestLocations(t *testing.T) {
	config := testConfig(t)
	analyzer, err := NewAnalyzer(config, discardLogger())
	if err != nil {
		t.Fatalf("NewAnalyzer returned error: %v", err)
	}

	locations, err := analyzer.Locations()
	if err != nil {
		t.Fatalf("Locations returned error: %v", err)
	}
	if len(locations) != 3 {
		t.Fatalf("Expected 3 locations after filter and dedupe, got %d", len(locations))
	}
	for _, loc := range locations {
		if loc.Name == "Hamlet" {
			t.Error("Expected Hamlet to be filtered by min_population")
		}
	}
}

func TestLocationsSampleSize(t *testing.T) {
	tests := []struct {
		name       string
		sampleSize int
		want       []string
	}{
		{"first two", 2, []string{"Murmansk", "Singapore"}},
		{"larger than catalog", 10, []string{"Murmansk", "Singapore", "Sydney"}},
		{"zero keeps all", 0, []string{"Murmansk", "Singapore", "Sydney"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig(t)
			config.SampleSize = tt.sampleSize
			analyzer, err := NewAnalyzer(config, discardLogger())
			if err != nil {
				t.Fatalf("NewAnalyzer returned error: %v", err)
			}

			locations, err := analyzer.Locations()
			if err != nil {
				t.Fatalf("Locations returned error: %v", err)
			}
			if len(locations) != len(tt.want) {
				t.Fatalf("Expected %d locations, got %d", len(tt.want), len(locations))
			}
			for i, name := range tt.want {
				if locations[i].Name != name {
					t.Errorf("Expected %s at %d, got %s", name, i, locations[i].Name)
				}
			}
		})
	}
}

func TestLocationsEmbeddedCatalog(t *testing.T) {
	config := DefaultConfig()
	config.Catalog = "asia"
	config.MinPopulation = 0
	analyzer, err := NewAnalyzer(config, discardLogger())
	if err != nil {
		t.Fatalf("NewAnalyzer returned error: %v", err)
	}

	locations, err := analyzer.Locations()
	if err != nil {
		t.Fatalf("Locations returned error: %v", err)
	}
	for _, loc := range locations {
		if loc.Continent != "Asia" {
			t.Errorf("Expected only Asian cities, got %s (%s)", loc.Name, loc.Continent)
		}
	}
}

func TestRun(t *testing.T) {
	var calls atomic.Int32
	server := newSunService(t, &calls)

	config := testConfig(t)
	config.APIURL = server.URL

	analyzer, err := NewAnalyzer(config, discardLogger())
	if err != nil {
		t.Fatalf("NewAnalyzer returned error: %v", err)
	}

	outcome, err := analyzer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(outcome.All) != 3 {
		t.Fatalf("Expected 3 enriched locations, got %d", len(outcome.All))
	}
	if len(outcome.Ranked) != 2 {
		t.Fatalf("Expected top 2, got %d", len(outcome.Ranked))
	}
	if calls.Load() != 3 {
		t.Errorf("Expected one remote call per location, got %d", calls.Load())
	}

	bySource := map[string]daylight.Result{}
	for _, e := range outcome.All {
		bySource[e.Location.Name] = e.Result
	}

	if r := bySource["Murmansk"]; r.Status != daylight.StatusPolarDay || r.Source != daylight.SourceAPI {
		t.Errorf("Expected Murmansk polar_day from api, got %s from %s", r.Status, r.Source)
	}
	if r := bySource["Singapore"]; r.Status != daylight.StatusSuccess || r.Source != daylight.SourceAPI || r.DayLength != "12:30:00" {
		t.Errorf("Expected Singapore 12:30:00 from api, got %s %s from %s", r.Status, r.DayLength, r.Source)
	}
	if r := bySource["Sydney"]; r.Status != daylight.StatusSuccess || r.Source != daylight.SourceLocal {
		t.Errorf("Expected Sydney from local fallback, got %s from %s", r.Status, r.Source)
	}

	if outcome.Ranked[0].Location.Name != "Murmansk" || outcome.Ranked[1].Location.Name != "Singapore" {
		t.Errorf("Unexpected ranking: %s, %s", outcome.Ranked[0].Location.Name, outcome.Ranked[1].Location.Name)
	}

	f, err := os.Open(config.Output)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected header plus 2 rows, got %d records", len(records))
	}

	metrics, err := os.ReadFile(config.MetricsFile)
	if err != nil {
		t.Fatalf("Failed to read metrics file: %v", err)
	}
	if !strings.Contains(string(metrics), "daylight_fallbacks_total") {
		t.Errorf("Expected fallback counter in metrics file, got:\n%s", metrics)
	}
}

func TestRunLocalOnly(t *testing.T) {
	config := testConfig(t)
	config.UseAPI = false
	config.APIURL = "http://127.0.0.1:1"
	config.MetricsFile = ""

	analyzer, err := NewAnalyzer(config, discardLogger())
	if err != nil {
		t.Fatalf("NewAnalyzer returned error: %v", err)
	}

	outcome, err := analyzer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	for _, e := range outcome.All {
		if e.Result.Source != daylight.SourceLocal {
			t.Errorf("Expected local source for %s, got %s", e.Location.Name, e.Result.Source)
		}
	}
}

func TestRunOutputFailure(t *testing.T) {
	config := testConfig(t)
	config.UseAPI = false
	config.Output = filepath.Join(t.TempDir(), "missing", "out.csv")

	analyzer, err := NewAnalyzer(config, discardLogger())
	if err != nil {
		t.Fatalf("NewAnalyzer returned error: %v", err)
	}

	if _, err := analyzer.Run(context.Background()); err == nil {
		t.Error("Expected error when the output file cannot be written")
	}
}

func TestRunCancelled(t *testing.T) {
	config := testConfig(t)
	config.UseAPI = false

	analyzer, err := NewAnalyzer(config, discardLogger())
	if err != nil {
		t.Fatalf("NewAnalyzer returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := analyzer.Run(ctx); err == nil {
		t.Error("Expected error for cancelled context")
	}
	if _, err := os.Stat(config.Output); !os.IsNotExist(err) {
		t.Error("Expected no output file after cancellation")
	}
}

func TestComputeSingle(t *testing.T) {
	config := DefaultConfig()
	config.UseAPI = false

	analyzer, err := NewAnalyzer(config, discardLogger())
	if err != nil {
		t.Fatalf("NewAnalyzer returned error: %v", err)
	}

	r := analyzer.Compute(context.Background(), -77.8419, 166.6863, "McMurdo")
	if r.Status != daylight.StatusPolarNight {
		t.Errorf("Expected polar_night, got %s", r.Status)
	}
	if r.DaylightHours != 0 {
		t.Errorf("Expected 0 hours, got %f", r.DaylightHours)
	}
}
