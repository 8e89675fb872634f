package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval marks a shift that ends before it starts or is too
	// short to be a real shift.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrOpenInterval marks a shift without a clock-out.
	ErrOpenInterval = errors.New("open interval")

	// ErrUnknownActivityTag marks an activity tag outside the special buckets.
	ErrUnknownActivityTag = errors.New("unknown activity tag")

	// ErrConcurrentEdit is returned when another edit of the same day won
	// every retry.
	ErrConcurrentEdit = errors.New("concurrent edit conflict")
)

// ValidationError rejects an administrative edit and names the offending
// field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationField reports whether err is a ValidationError on field.
func IsValidationField(err error, field string) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Field == field
}
