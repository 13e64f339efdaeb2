package orders

import (
	"errors"
	"strings"
)

var (
	// ErrInsufficientStock means a decrement would drive stock below zero.
	// The whole order is rolled back, never partially applied.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrMedicineNotFound means a line item resolved to no catalog row,
	// neither by id nor by name. The whole order is rejected.
	ErrMedicineNotFound = errors.New("medicine not found")

	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition covers backward moves, skipped states and
	// repeated transitions.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError carries field-level messages for a rejected request.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}
