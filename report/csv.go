// Package report writes ranked daylight results to CSV and renders the
// console summary.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/devskill-org/daylight/ranking"
	"github.com/devskill-org/daylight/utils"
)

// Row is one line of the output file.
type Row struct {
	Name          string `csv:"name"`
	Country       string `csv:"country"`
	Latitude      string `csv:"latitude"`
	Longitude     string `csv:"longitude"`
	Population    int64  `csv:"population"`
	Sunrise       string `csv:"sunrise"`
	Sunset        string `csv:"sunset"`
	DaylightHours string `csv:"daylight_hours"`
	DayLength     string `csv:"day_length"`
	Status        string `csv:"status"`
}

// Rows converts ranked entries to output rows. Missing sunrise or sunset
// values are written as empty cells.
func Rows(entries []ranking.Entry) []*Row {
	rows := make([]*Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &Row{
			Name:          e.Location.Name,
			Country:       e.Location.Country,
			Latitude:      formatFloat(e.Location.Latitude),
			Longitude:     formatFloat(e.Location.Longitude),
			Population:    e.Location.Population,
			Sunrise:       utils.ClockString(e.Result.Sunrise),
			Sunset:        utils.ClockString(e.Result.Sunset),
			DaylightHours: formatFloat(e.Result.DaylightHours),
			DayLength:     e.Result.DayLength,
			Status:        string(e.Result.Status),
		})
	}
	return rows
}

// WriteCSVTo writes entries with a header row to w.
func WriteCSVTo(w io.Writer, entries []ranking.Entry) error {
	if err := gocsv.Marshal(Rows(entries), w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// WriteCSV writes entries to path, replacing any existing file.
func WriteCSV(path string, entries []ranking.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := gocsv.MarshalFile(Rows(entries), f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
