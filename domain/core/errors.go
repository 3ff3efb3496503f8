package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrTableNotFound  = fmt.Errorf("%w: table", ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// Validation errors
	ErrValidation            = errors.New("analysis request validation failed")
	ErrInsufficientData      = errors.New("insufficient data for analysis")
	ErrInsufficientVariables = errors.New("insufficient variables for analysis")
	ErrInvalidColumn         = errors.New("column cannot be used as numeric")

	// Algebra errors
	ErrDimensionMismatch = errors.New("matrix dimension mismatch")
	ErrSingularMatrix    = errors.New("matrix is singular")

	// Computation errors
	ErrAnalysisFailed = errors.New("analysis failed")

	// Valid non-error outcome marker: a computation that produced nothing
	// above its thresholds (e.g. no association rules cleared min support).
	ErrEmptyResult = errors.New("analysis produced an empty result")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, reason)
}

func NewInvalidColumnError(column string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidColumn, column, reason)
}

func NewAnalysisFailedError(module string, column string, err error) error {
	if column != "" {
		return fmt.Errorf("%w in %s (column %s): %v", ErrAnalysisFailed, module, column, err)
	}
	return fmt.Errorf("%w in %s: %v", ErrAnalysisFailed, module, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrInsufficientVariables) ||
		errors.Is(err, ErrInvalidColumn)
}

func IsAlgebraError(err error) bool {
	return errors.Is(err, ErrDimensionMismatch) ||
		errors.Is(err, ErrSingularMatrix)
}
