package common

import (
	"errors"
	"fmt"
)

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Query validation errors
	ErrInvalidFilterKey = errors.New("invalid filter key")
	ErrInvalidSortField = errors.New("invalid sort field")
	ErrInvalidEntity    = errors.New("invalid entity type")

	// Action errors
	ErrUnknownAction        = errors.New("unknown admin action")
	ErrConfirmationRequired = errors.New("confirmation required for destructive action")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")

	// Repository errors
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)

// PartialFailureError reports a multi-stage action that stopped partway.
// Completed holds the number of records fully processed before the
// failing stage; Stage names the step that failed so an operator can
// resume safely.
type PartialFailureError struct {
	Action    string
	Stage     string
	Completed int64
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s failed at stage %q after %d records: %v", e.Action, e.Stage, e.Completed, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
