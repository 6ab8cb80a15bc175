// Package main provides an example of using the local solar engines for sunrise/sunset times.
package main

import (
	"fmt"
	"time"

	"github.com/devskill-org/daylight/solar"
)

func main() {
	year := time.Now().Year()
	date := solar.JuneSolsticeDate(year)
	fmt.Printf("June solstice %d: %s\n\n", year, solar.JuneSolstice(year).Format(time.RFC3339))

	// Riga, Latvia
	lat, lng := 56.9496, 24.1052

	for _, name := range []string{solar.EngineSuncalc, solar.EngineSunrise} {
		engine, err := solar.NewEngine(name)
		if err != nil {
			fmt.Println(err)
			continue
		}

		times, err := engine.RiseSet(date, lat, lng)
		if err != nil {
			fmt.Printf("%-8s %v\n", name, err)
			continue
		}
		fmt.Printf("%-8s sunrise %s  sunset %s  daylight %s\n", name,
			times.Sunrise.Format("15:04:05"),
			times.Sunset.Format("15:04:05"),
			times.DayLength().Round(time.Second))
	}

	fmt.Printf("\nCircumpolar at 70N: %s\n", solar.CircumpolarState(date, 70))
	fmt.Printf("Approximate day length at 60N: %.2fh\n", solar.DayLengthHours(date, 60))
}
