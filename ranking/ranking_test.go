package ranking

import (
	"fmt"
	"testing"

	"github.com/devskill-org/daylight/daylight"
)

func entry(name string, hours float64, population int64) Entry {
	return Entry{
		Location: daylight.Location{Name: name, Population: population},
		Result:   daylight.Result{DaylightHours: hours, Status: daylight.StatusSuccess},
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Location.Name
	}
	return out
}

func TestRankOrdering(t *testing.T) {
	input := []Entry{
		entry("Sydney", 9.9, 5_312_000),
		entry("Murmansk", 24, 270_000),
		entry("Singapore", 12.1, 5_686_000),
		entry("Oslo", 18.8, 700_000),
		entry("Bergen", 18.8, 285_000),
		entry("Stockholm", 18.8, 975_000),
	}

	got := names(Rank(input, 0))
	want := []string{"Murmansk", "Stockholm", "Oslo", "Bergen", "Singapore", "Sydney"}

	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if input[0].Location.Name != "Sydney" {
		t.Error("Rank must not modify its input")
	}
}

func TestRankStableOnFullTies(t *testing.T) {
	input := []Entry{
		entry("A", 15, 100),
		entry("B", 15, 100),
		entry("C", 15, 100),
		entry("D", 16, 1),
	}

	got := names(Rank(input, 0))
	want := []string{"D", "A", "B", "C"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRankEdgeCases(t *testing.T) {
	if got := Rank(nil, 5); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil result, got %v", got)
	}

	input := []Entry{entry("A", 1, 1), entry("B", 2, 1)}
	if got := Rank(input, 10); len(got) != 2 {
		t.Errorf("Expected full sequence when topN exceeds input, got %d", len(got))
	}
}

func TestRankTopNIsPrefix(t *testing.T) {
	var input []Entry
	for i := 0; i < 100; i++ {
		input = append(input, entry(fmt.Sprintf("city-%d", i), float64((i*37)%24), int64((i*7919)%1000)))
	}

	full := Rank(input, 0)
	top := Rank(input, 20)

	if len(top) != 20 {
		t.Fatalf("Expected 20 entries, got %d", len(top))
	}
	for i := range top {
		if top[i].Location.Name != full[i].Location.Name {
			t.Errorf("Position %d: expected %s, got %s", i, full[i].Location.Name, top[i].Location.Name)
		}
	}

	for i := 1; i < len(full); i++ {
		a, b := full[i-1], full[i]
		if a.Result.DaylightHours < b.Result.DaylightHours {
			t.Fatalf("Position %d: daylight not descending", i)
		}
		if a.Result.DaylightHours == b.Result.DaylightHours && a.Location.Population < b.Location.Population {
			t.Fatalf("Position %d: population tie-break not descending", i)
		}
	}
}

func TestGroupBy(t *testing.T) {
	input := []Entry{
		{Location: daylight.Location{Name: "Madrid", Country: "Spain", Population: 3_300_000}, Result: daylight.Result{DaylightHours: 15.1}},
		{Location: daylight.Location{Name: "Oslo", Country: "Norway", Population: 700_000}, Result: daylight.Result{DaylightHours: 18.8}},
		{Location: daylight.Location{Name: "Barcelona", Country: "Spain", Population: 1_600_000}, Result: daylight.Result{DaylightHours: 15.2}},
		{Location: daylight.Location{Name: "Tromso", Country: "Norway", Population: 77_000}, Result: daylight.Result{DaylightHours: 24}},
		{Location: daylight.Location{Name: "Seville", Country: "Spain", Population: 680_000}, Result: daylight.Result{DaylightHours: 14.6}},
	}

	groups := GroupBy(input, ByCountry, 2)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "Norway" {
		t.Errorf("Expected Norway first, got %s", groups[0].Key)
	}
	if got := names(groups[1].Entries); fmt.Sprint(got) != "[Barcelona Madrid]" {
		t.Errorf("Expected [Barcelona Madrid], got %v", got)
	}
}

func TestByRegion(t *testing.T) {
	e := Entry{Location: daylight.Location{Continent: "Asia", Region: "Siberia & Far East"}}
	if got := ByRegion(e); got != "Siberia & Far East" {
		t.Errorf("Expected region, got %s", got)
	}
	e.Location.Region = ""
	if got := ByRegion(e); got != "Asia" {
		t.Errorf("Expected continent fallback, got %s", got)
	}
}
