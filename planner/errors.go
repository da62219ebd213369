/*
errors.go - Centralized error types for the planner engine

PURPOSE:
  All error types in one place. Callers (the HTTP layer, import/export)
  classify failures with errors.Is / errors.As.

ERROR CATEGORIES:
  1. Validation errors - bad user input (empty name, non-positive qty)
  2. Capacity errors   - assignment would exceed a category's allowance
  3. Malformed data    - persisted blob or imported file fails structure checks

  A fourth class, reference inconsistency (an operation naming a category
  id that no longer exists), is deliberately NOT an error: engine
  operations treat it as a silent no-op to stay robust against stale ids
  from concurrent edits in the same session.
*/
package planner

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned when user input fails validation
	// (empty category name, quantity <= 0). Nothing is mutated.
	ErrValidation = errors.New("validation failed")

	// ErrCapacityExceeded is returned when an assignment would push a
	// category's usage past its allowance. Nothing is mutated.
	ErrCapacityExceeded = errors.New("no remaining days in category")

	// ErrMalformedData is returned when a persisted blob or imported file
	// fails structural checks (missing categories array).
	ErrMalformedData = errors.New("invalid file")

	// ErrNoEvent is returned when an operation requires an existing event
	// on a date that has none (half-day toggle on an empty day).
	ErrNoEvent = errors.New("no event on date")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// CapacityError reports how far over the allowance an assignment would go.
type CapacityError struct {
	CategoryID string
	Remaining  float64
	Requested  float64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("category %s: requested %.1f with %.1f remaining", e.CategoryID, e.Requested, e.Remaining)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// ValidationError names the rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrMalformedData) ||
		errors.Is(err, ErrNoEvent)
}
