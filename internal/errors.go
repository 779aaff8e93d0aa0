package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDate is returned when a value cannot be parsed into a calendar date
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnsupportedFrequency is returned for a frequency outside weekly/monthly/quarterly/yearly
	ErrUnsupportedFrequency = errors.New("unsupported frequency")

	// ErrInvalidSubscription is returned when input fails validation
	ErrInvalidSubscription = errors.New("invalid subscription")

	// ErrNotFound is returned when a subscription ID is not in the store
	ErrNotFound = errors.New("subscription not found")
)

// ValidationError lists the fields of a subscription input that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: please fix %s", ErrInvalidSubscription, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSubscription
}
