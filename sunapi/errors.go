package sunapi

import (
	"errors"
	"fmt"
)

// ErrNoSunEvent is returned when the API reports that the sun does not rise
// or does not set on the requested date.
var ErrNoSunEvent = errors.New("sun does not rise or set on this date")

// APIError represents a non-200 HTTP response from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sun times API returned HTTP %d: %s", e.StatusCode, e.Message)
}

// StatusError represents a 200 response whose payload status is not OK
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API status %s", e.Status)
}

// ValidationError represents a validation error for input parameters
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NetworkError represents a network-related error
type NetworkError struct {
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("sun times request failed during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ResponseError represents a payload that could not be decoded or is missing
// required fields
type ResponseError struct {
	Message string
	Err     error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("unexpected response: %s", e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err means the service could not be used right
// now (transport failure, non-200 or non-OK status), as opposed to bad input
// or a malformed payload.
func IsTransient(err error) bool {
	var apiErr *APIError
	var statusErr *StatusError
	var netErr *NetworkError
	return errors.As(err, &apiErr) || errors.As(err, &statusErr) || errors.As(err, &netErr)
}
