// Package ranking orders enriched locations by daylight and summarises them.
package ranking

import (
	"cmp"
	"slices"

	"github.com/devskill-org/daylight/daylight"
)

// Entry pairs a location with its computed daylight.
type Entry struct {
	Location daylight.Location
	Result   daylight.Result
}

// compare orders by daylight hours descending, then population descending.
func compare(a, b Entry) int {
	if c := cmp.Compare(b.Result.DaylightHours, a.Result.DaylightHours); c != 0 {
		return c
	}
	return cmp.Compare(b.Location.Population, a.Location.Population)
}

// Rank returns a sorted copy of entries, longest daylight first and larger
// population first on ties. Full ties keep their input order. topN <= 0
// returns every entry. The input slice is not modified.
func Rank(entries []Entry, topN int) []Entry {
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, compare)
	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	if ranked == nil {
		return []Entry{}
	}
	return ranked
}

// Group is a named subset of ranked entries.
type Group struct {
	Key     string
	Entries []Entry
}

// GroupBy partitions entries by key, ranks each group and keeps its first
// topN. Groups are ordered by their best daylight, then by key.
func GroupBy(entries []Entry, key func(Entry) string, topN int) []Group {
	index := map[string]int{}
	var groups []Group
	for _, e := range entries {
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	for i := range groups {
		groups[i].Entries = Rank(groups[i].Entries, topN)
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		if c := compare(a.Entries[0], b.Entries[0]); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return groups
}

// ByCountry keys entries by country.
func ByCountry(e Entry) string { return e.Location.Country }

// ByRegion keys entries by region, falling back to continent.
func ByRegion(e Entry) string {
	if e.Location.Region != "" {
		return e.Location.Region
	}
	return e.Location.Continent
}
