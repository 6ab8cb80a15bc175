// Package main provides an example of using the sunapi client to fetch sunrise and sunset times.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/devskill-org/daylight/sunapi"
)

func main() {
	client := sunapi.NewClient("daylight-example/1.0")

	// Riga, Latvia
	location := sunapi.Location{
		Latitude:  56.9496,
		Longitude: 24.1052,
	}

	if err := sunapi.ValidateLocation(location); err != nil {
		log.Fatalf("Invalid location: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	times, err := client.GetSunTimes(ctx, sunapi.Query{
		Location: location,
		Date:     time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		if errors.Is(err, sunapi.ErrNoSunEvent) {
			fmt.Println("The sun does not rise or set at this location on that date")
			return
		}
		switch e := err.(type) {
		case *sunapi.APIError:
			log.Fatalf("API error %d: %s", e.StatusCode, e.Message)
		case *sunapi.StatusError:
			log.Fatalf("API status: %s", e.Status)
		case *sunapi.NetworkError:
			log.Fatalf("Network error: %v", e.Err)
		default:
			log.Fatalf("Unknown error: %v", err)
		}
	}

	fmt.Printf("Sunrise:    %s UTC\n", times.Sunrise.Format("15:04:05"))
	fmt.Printf("Sunset:     %s UTC\n", times.Sunset.Format("15:04:05"))
	fmt.Printf("Solar noon: %s UTC\n", times.SolarNoon.Format("15:04:05"))
	fmt.Printf("Day length: %s\n", times.DayLength())
}
