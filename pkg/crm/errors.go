package crm

import "errors"

var (
	// ErrInvalidInput is returned when a record would be created or mutated with invalid data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition is returned when a status change is not allowed from the current state.
	ErrInvalidTransition = errors.New("invalid state transition")
)
