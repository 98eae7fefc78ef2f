package persistence

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrNotFound indicates no record exists for the given identifier.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists indicates a record with the same identifier already exists.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrUnitOfWorkClosed indicates the unit of work was already saved or rolled back.
	ErrUnitOfWorkClosed = errors.New("unit of work is closed")
)

// EntityError wraps record errors with the operation and record that failed.
type EntityError struct {
	Op     string    // Operation being performed (e.g., "Get", "Add", "Update")
	Entity string    // Record kind, e.g. "task"
	ID     uuid.UUID // Record id if applicable
	Err    error     // Underlying error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s operation failed for %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

// NewEntityError creates a new record error with context.
func NewEntityError(op, entity string, id uuid.UUID, err error) *EntityError {
	return &EntityError{
		Op:     op,
		Entity: entity,
		ID:     id,
		Err:    err,
	}
}

// IsNotFound checks if an error indicates a record was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
