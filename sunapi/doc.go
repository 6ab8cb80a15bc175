// Package sunapi provides a Go client for the sunrise-sunset.org JSON API.
//
// The service returns sunrise, sunset, solar noon, day length and twilight
// boundaries for a coordinate and calendar date. All instants are requested
// in ISO-8601 (formatted=0) and decoded as UTC time.Time values.
//
// Basic Usage:
//
//	client := sunapi.NewClient("daylight/1.0")
//
//	query := sunapi.Query{
//		Location: sunapi.Location{Latitude: 59.9139, Longitude: 10.7522},
//		Date:     time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
//	}
//
//	times, err := client.GetSunTimes(ctx, query)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(times.Sunrise, times.Sunset, times.DayLength())
//
// Errors are typed: APIError for non-200 responses, StatusError when the
// payload status is not OK, NetworkError for transport failures and
// ResponseError for payloads that cannot be decoded. IsTransient reports
// whether an error should be treated as "service unavailable".
//
// For more information about the API, visit: https://sunrise-sunset.org/api
package sunapi
