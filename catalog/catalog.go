// Package catalog provides the embedded world city dataset and loaders for
// user-supplied city files.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/devskill-org/daylight/daylight"
)

//go:embed cities.csv
var citiesCSV []byte

// Catalog names accepted by Load.
const (
	World        = "world"
	Europe       = "europe"
	NonEuropean  = "non-european"
	Asia         = "asia"
	NorthAmerica = "north-america"
)

// ErrUnknownCatalog is returned by Load for names not in Names().
var ErrUnknownCatalog = errors.New("unknown catalog")

var filters = map[string]func(daylight.Location) bool{
	World:        func(daylight.Location) bool { return true },
	Europe:       func(l daylight.Location) bool { return l.Continent == "Europe" },
	NonEuropean:  func(l daylight.Location) bool { return l.Continent != "Europe" },
	Asia:         func(l daylight.Location) bool { return l.Continent == "Asia" },
	NorthAmerica: func(l daylight.Location) bool { return l.Continent == "North America" },
}

// Names returns the embedded catalog names in sorted order.
func Names() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load returns the named embedded catalog.
func Load(name string) ([]daylight.Location, error) {
	keep, ok := filters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q, must be one of: %s", ErrUnknownCatalog, name, strings.Join(Names(), ", "))
	}

	all, _, err := Parse(bytes.NewReader(citiesCSV))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}

	var out []daylight.Location
	for _, loc := range all {
		if keep(loc) {
			out = append(out, loc)
		}
	}
	return out, nil
}

// LoadFile reads a delimited city file from path. See Parse for the accepted
// columns. It returns the parsed locations and the number of skipped rows.
func LoadFile(path string) ([]daylight.Location, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// FilterMinPopulation keeps locations with at least minPopulation inhabitants.
func FilterMinPopulation(locations []daylight.Location, minPopulation int64) []daylight.Location {
	if minPopulation <= 0 {
		return locations
	}
	out := make([]daylight.Location, 0, len(locations))
	for _, loc := range locations {
		if loc.Population >= minPopulation {
			out = append(out, loc)
		}
	}
	return out
}

// Dedupe drops repeated name/country pairs, keeping the first occurrence.
func Dedupe(locations []daylight.Location) []daylight.Location {
	seen := make(map[string]struct{}, len(locations))
	out := make([]daylight.Location, 0, len(locations))
	for _, loc := range locations {
		key := strings.ToLower(loc.Name) + "\x00" + strings.ToLower(loc.Country)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, loc)
	}
	return out
}

// Count returns the number of cities in each embedded catalog.
func Count() (map[string]int, error) {
	counts := make(map[string]int, len(filters))
	for _, name := range Names() {
		locs, err := Load(name)
		if err != nil {
			return nil, err
		}
		counts[name] = len(locs)
	}
	return counts, nil
}
