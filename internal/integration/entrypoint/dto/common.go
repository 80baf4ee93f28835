// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format accepted and returned by the API.
const DateLayout = "2006-01-02"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ParseDate accepts either an RFC 3339 timestamp or a plain date.
// The returned time is in UTC.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", value)
	}
	return t, nil
}

// ParseEndDate works like ParseDate, but a plain date extends to the last
// instant of that day so the bound stays inclusive.
func ParseEndDate(value string) (time.Time, error) {
	t, err := ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if _, err := time.Parse(DateLayout, value); err == nil {
		return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return t, nil
}

// ParseOptionalDate parses a pointer date field from a request body.
func ParseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
