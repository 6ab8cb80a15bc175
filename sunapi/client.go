package sunapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the public sunrise-sunset.org endpoint
const DefaultBaseURL = "https://api.sunrise-sunset.org/json"

// Client represents a client for the sunrise-sunset.org API
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a new client for the sunrise-sunset.org API
func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   DefaultBaseURL,
		userAgent: userAgent,
	}
}

// NewClientWithHTTPClient creates a new client with a custom HTTP client
func NewClientWithHTTPClient(httpClient *http.Client, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
		userAgent:  userAgent,
	}
}

// SetBaseURL sets the base URL for the API (useful for testing)
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// GetSunTimes retrieves the solar events for the query's location and date.
// It returns ErrNoSunEvent when the service reports that the sun does not
// rise or set that day.
func (c *Client) GetSunTimes(ctx context.Context, q Query) (*SunTimes, error) {
	if err := ValidateLocation(q.Location); err != nil {
		return nil, err
	}
	if q.Date.IsZero() {
		return nil, &ValidationError{Field: "date", Message: "date is required"}
	}

	reqURL, err := c.buildURL(q)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Operation: "request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Operation: "read body", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	return parseResponse(body)
}

// parseResponse validates the payload and decodes the results object
func parseResponse(body []byte) (*SunTimes, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ResponseError{Message: "failed to unmarshal response", Err: err}
	}

	if env.Status != StatusOK {
		if env.Status == "" {
			return nil, &ResponseError{Message: "missing status"}
		}
		return nil, &StatusError{Status: env.Status}
	}

	if len(env.Results) == 0 || string(env.Results) == "null" {
		return nil, &ResponseError{Message: "missing results"}
	}

	var times SunTimes
	if err := json.Unmarshal(env.Results, &times); err != nil {
		return nil, &ResponseError{Message: "failed to unmarshal results", Err: err}
	}

	if isNoEvent(times.Sunrise) || isNoEvent(times.Sunset) {
		return nil, ErrNoSunEvent
	}
	if times.Sunrise.IsZero() || times.Sunset.IsZero() {
		return nil, &ResponseError{Message: "missing sunrise or sunset"}
	}
	if times.Sunset.Before(times.Sunrise) {
		return nil, &ResponseError{Message: "sunset precedes sunrise"}
	}

	times.Sunrise = times.Sunrise.UTC()
	times.Sunset = times.Sunset.UTC()
	times.SolarNoon = times.SolarNoon.UTC()
	times.CivilTwilightBegin = times.CivilTwilightBegin.UTC()
	times.CivilTwilightEnd = times.CivilTwilightEnd.UTC()

	return &times, nil
}

// buildURL constructs the API URL with query parameters
func (c *Client) buildURL(q Query) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}

	query := u.Query()
	query.Set("lat", formatFloat(q.Location.Latitude))
	query.Set("lng", formatFloat(q.Location.Longitude))
	query.Set("date", q.Date.Format("2006-01-02"))
	query.Set("formatted", "0")

	u.RawQuery = query.Encode()
	return u.String(), nil
}

// formatFloat formats a float64 to a string with appropriate precision
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ValidateLocation validates that the location parameters are within acceptable ranges
func ValidateLocation(loc Location) error {
	if math.IsNaN(loc.Latitude) || loc.Latitude < -90 || loc.Latitude > 90 {
		return &ValidationError{
			Field:   "latitude",
			Message: fmt.Sprintf("must be between -90 and 90, got %f", loc.Latitude),
		}
	}
	if math.IsNaN(loc.Longitude) || loc.Longitude < -180 || loc.Longitude > 180 {
		return &ValidationError{
			Field:   "longitude",
			Message: fmt.Sprintf("must be between -180 and 180, got %f", loc.Longitude),
		}
	}
	return nil
}
