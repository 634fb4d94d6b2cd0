package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// InvalidDateError names the field and value that failed to parse.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrInvalidDate, e.Field, e.Value)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or datetime. Values without a zone are UTC.
func ParseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &InvalidDateError{Field: field, Value: value}
}
