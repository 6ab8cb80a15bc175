package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/devskill-org/daylight/daylight"
	"github.com/devskill-org/daylight/ranking"
	"github.com/devskill-org/daylight/utils"
)

// Breakdown modes for Report.Breakdown.
const (
	BreakdownNone    = "none"
	BreakdownCountry = "country"
	BreakdownRegion  = "region"
)

// Report is everything the console renders for one run.
type Report struct {
	Title     string
	Date      time.Time
	Ranked    []ranking.Entry // top N
	All       []ranking.Entry // every enriched location, for statistics
	Breakdown string
}

// Console renders a Report as text.
type Console struct {
	w       io.Writer
	printer *message.Printer

	title   *color.Color
	header  *color.Color
	winner  *color.Color
	polar   *color.Color
	failure *color.Color
	dim     *color.Color
	plain   *color.Color
}

// NewConsole returns a Console writing to w. Colour escapes are only emitted
// when useColor is set.
func NewConsole(w io.Writer, useColor bool) *Console {
	c := &Console{
		w:       w,
		printer: message.NewPrinter(language.English),
		title:   color.New(color.FgCyan, color.Bold),
		header:  color.New(color.Bold),
		winner:  color.New(color.FgYellow, color.Bold),
		polar:   color.New(color.FgYellow),
		failure: color.New(color.FgRed),
		dim:     color.New(color.FgHiBlack),
		plain:   color.New(),
	}
	c.plain.DisableColor()
	for _, col := range []*color.Color{c.title, c.header, c.winner, c.polar, c.failure, c.dim} {
		if useColor {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// Render prints the ranked table, winner, statistics, polar-day list and the
// requested breakdown.
func (c *Console) Render(r Report) {
	c.banner(fmt.Sprintf("%s (%s)", r.Title, utils.ISODate(r.Date)))
	c.Table(r.Ranked)

	if len(r.Ranked) > 0 {
		c.Winner(r.Ranked[0])
	}

	stats := ranking.Summarize(r.All)
	c.Stats(stats)
	c.PolarDays(ranking.PolarDays(ranking.Rank(r.All, 0)))

	switch r.Breakdown {
	case BreakdownCountry:
		c.Breakdown("BY COUNTRY", ranking.GroupBy(r.All, ranking.ByCountry, 10))
	case BreakdownRegion:
		c.Breakdown("BY REGION", ranking.GroupBy(r.All, ranking.ByRegion, 5))
	}
}

func (c *Console) banner(title string) {
	fmt.Fprintln(c.w, "\n========================================")
	c.title.Fprintln(c.w, title)
	fmt.Fprintln(c.w, "========================================")
}

// Table prints the ranked entries as a box-drawn table.
func (c *Console) Table(entries []ranking.Entry) {
	fmt.Fprintln(c.w, "┌──────┬──────────────────────┬──────────────────┬──────────────┬──────────┬──────────┬──────────┬──────────┬──────────────┐")
	c.header.Fprintln(c.w, "│ Rank │ City                 │ Country          │   Population │ Latitude │ Daylight │ Sunrise  │ Sunset   │ Status       │")
	fmt.Fprintln(c.w, "├──────┼──────────────────────┼──────────────────┼──────────────┼──────────┼──────────┼──────────┼──────────┼──────────────┤")

	for i, e := range entries {
		line := fmt.Sprintf("│ %4d │ %-20s │ %-16s │ %12s │ %8s │ %7.2fh │ %-8s │ %-8s │ %-12s │",
			i+1,
			fit(e.Location.Name, 20),
			fit(e.Location.Country, 16),
			c.printer.Sprintf("%d", e.Location.Population),
			formatLatitude(e.Location.Latitude),
			e.Result.DaylightHours,
			orDash(utils.ClockString(e.Result.Sunrise)),
			orDash(utils.ClockString(e.Result.Sunset)),
			fit(statusLabel(e.Result.Status), 12),
		)
		c.colorFor(e.Result.Status).Fprintln(c.w, line)
	}

	fmt.Fprintln(c.w, "└──────┴──────────────────────┴──────────────────┴──────────────┴──────────┴──────────┴──────────┴──────────┴──────────────┘")
}

// Winner prints the first-ranked entry.
func (c *Console) Winner(e ranking.Entry) {
	fmt.Fprintln(c.w)
	c.winner.Fprintf(c.w, "Longest day: %s, %s with %s of daylight (%s)\n",
		e.Location.Name, e.Location.Country, e.Result.DayLength, statusLabel(e.Result.Status))
}

// Stats prints run statistics.
func (c *Console) Stats(s ranking.Stats) {
	fmt.Fprintln(c.w)
	c.header.Fprintln(c.w, "STATISTICS")
	c.printer.Fprintf(c.w, "  Locations:      %d\n", s.Total)
	c.printer.Fprintf(c.w, "  Successful:     %d\n", s.Successful)
	c.printer.Fprintf(c.w, "  Polar day:      %d\n", s.PolarDay)
	c.printer.Fprintf(c.w, "  Polar night:    %d\n", s.PolarNight)
	if s.Errors > 0 {
		c.failure.Fprintf(c.w, "  Errors:         %d\n", s.Errors)
	}
	if s.Longest == nil {
		return
	}
	fmt.Fprintf(c.w, "  Longest:        %s (%.2fh)\n", s.Longest.Location.Name, s.Longest.Result.DaylightHours)
	fmt.Fprintf(c.w, "  Shortest:       %s (%.2fh)\n", s.Shortest.Location.Name, s.Shortest.Result.DaylightHours)
	fmt.Fprintf(c.w, "  Average:        %.2fh\n", s.Average)
	fmt.Fprintf(c.w, "  Difference:     %.2fh\n", s.Difference)
	fmt.Fprintf(c.w, "  24h daylight:   %d\n", s.FullDay)
	fmt.Fprintf(c.w, "  0h daylight:    %d\n", s.NoDay)
}

// PolarDays lists the entries under the midnight sun.
func (c *Console) PolarDays(entries []ranking.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(c.w)
	c.header.Fprintln(c.w, "MIDNIGHT SUN")
	for _, e := range entries {
		c.polar.Fprintf(c.w, "  %-20s %-16s %s\n", fit(e.Location.Name, 20), fit(e.Location.Country, 16), formatLatitude(e.Location.Latitude))
	}
}

// Breakdown prints each group's leading entries.
func (c *Console) Breakdown(title string, groups []ranking.Group) {
	fmt.Fprintln(c.w)
	c.header.Fprintln(c.w, title)
	for _, g := range groups {
		c.title.Fprintf(c.w, "  %s\n", g.Key)
		for i, e := range g.Entries {
			fmt.Fprintf(c.w, "    %2d. %-20s %7.2fh  %s\n", i+1, fit(e.Location.Name, 20), e.Result.DaylightHours, e.Result.DayLength)
		}
	}
}

func (c *Console) colorFor(s daylight.Status) *color.Color {
	switch {
	case s.IsError():
		return c.failure
	case s == daylight.StatusPolarDay:
		return c.polar
	case s == daylight.StatusPolarNight:
		return c.dim
	default:
		return c.plain
	}
}

func statusLabel(s daylight.Status) string {
	if s.IsError() {
		return "error"
	}
	return string(s)
}

func formatLatitude(lat float64) string {
	hemi := "N"
	if lat < 0 {
		hemi = "S"
	}
	return fmt.Sprintf("%.2f°%s", math.Abs(lat), hemi)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// fit truncates s to n runes, marking the cut with an ellipsis.
func fit(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n-1])) + "…"
}
