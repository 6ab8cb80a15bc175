package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/devskill-org/daylight/daylight"
)

// headerAliases maps common alternate column names to the canonical ones.
var headerAliases = map[string]string{
	"city": "name",
	"lat":  "latitude",
	"lng":  "longitude",
	"lon":  "longitude",
	"long": "longitude",
	"pop":  "population",
}

var requiredColumns = []string{"name", "latitude", "longitude"}

// row is one raw catalog line. Numeric columns are kept as text so a bad value
// skips only its own row.
type row struct {
	Name       string `csv:"name"`
	Country    string `csv:"country"`
	Latitude   string `csv:"latitude"`
	Longitude  string `csv:"longitude"`
	Population string `csv:"population"`
	Continent  string `csv:"continent"`
	Region     string `csv:"region"`
}

// recordReader replays already-read records to gocsv.
type recordReader struct {
	records [][]string
	pos     int
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)
	return rest, nil
}

// Parse reads a comma-separated city table. The header is matched case
// insensitively; city, lat, lng/lon and pop are accepted as aliases. name,
// latitude and longitude are required. Rows with an empty name or an
// unparsable or out-of-range coordinate are skipped and counted.
func Parse(r io.Reader) ([]daylight.Location, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, errors.New("catalog is empty")
	}

	header := normalizeHeader(records[0])
	if err := checkColumns(header); err != nil {
		return nil, 0, err
	}
	records[0] = header
	for i := 1; i < len(records); i++ {
		records[i] = fitRecord(records[i], len(header))
	}

	var rows []row
	if err := gocsv.UnmarshalCSV(&recordReader{records: records}, &rows); err != nil {
		return nil, 0, fmt.Errorf("failed to decode catalog: %w", err)
	}

	locations := make([]daylight.Location, 0, len(rows))
	skipped := 0
	for _, rw := range rows {
		loc, err := rw.location()
		if err != nil {
			skipped++
			continue
		}
		locations = append(locations, loc)
	}
	return locations, skipped, nil
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.ToLower(strings.TrimSpace(h))
		if alias, ok := headerAliases[h]; ok {
			h = alias
		}
		out[i] = h
	}
	return out
}

// fitRecord pads or truncates rec to n fields.
func fitRecord(rec []string, n int) []string {
	if len(rec) > n {
		return rec[:n]
	}
	for len(rec) < n {
		rec = append(rec, "")
	}
	return rec
}

func checkColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("catalog is missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (rw row) location() (daylight.Location, error) {
	name := strings.TrimSpace(rw.Name)
	if name == "" {
		return daylight.Location{}, errors.New("empty name")
	}

	lat, ok := parseCoordinate(rw.Latitude, 90)
	if !ok {
		return daylight.Location{}, fmt.Errorf("invalid latitude %q", rw.Latitude)
	}
	lng, ok := parseCoordinate(rw.Longitude, 180)
	if !ok {
		return daylight.Location{}, fmt.Errorf("invalid longitude %q", rw.Longitude)
	}

	pop, ok := parsePopulation(rw.Population)
	if !ok {
		return daylight.Location{}, fmt.Errorf("invalid population %q", rw.Population)
	}

	continent := strings.TrimSpace(rw.Continent)
	region := strings.TrimSpace(rw.Region)
	if region == "" {
		region = continent
	}

	return daylight.Location{
		Name:       name,
		Country:    strings.TrimSpace(rw.Country),
		Latitude:   lat,
		Longitude:  lng,
		Population: pop,
		Continent:  continent,
		Region:     region,
	}, nil
}

// parseCoordinate parses a finite value within [-limit, limit].
func parseCoordinate(s string, limit float64) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < -limit || v > limit {
		return 0, false
	}
	return v, true
}

// parsePopulation accepts plain integers with optional thousands separators
// and float notation such as 1.5e6. An empty value is zero.
func parsePopulation(s string) (int64, bool) {
	p := strings.NewReplacer("_", "", ",", "").Replace(strings.TrimSpace(s))
	if p == "" {
		return 0, true
	}
	if n, err := strconv.ParseInt(p, 10, 64); err == nil {
		return n, n >= 0
	}
	f, err := strconv.ParseFloat(p, 64)
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	if err != nil || math.IsNaN(f) || f < 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
