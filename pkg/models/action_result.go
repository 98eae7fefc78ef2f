package models

import "fmt"

// FailureKind classifies a failed step.
type FailureKind string

const (
	// FailureValidation marks a caller-correctable configuration problem.
	FailureValidation FailureKind = "validation"
	// FailureInfrastructure marks a collaborator error (store, transport, network).
	FailureInfrastructure FailureKind = "infrastructure"
	// FailureTimeout marks a webhook call aborted by its own timer.
	FailureTimeout FailureKind = "timeout"
)

// ActionResult is the outcome of one step: either Success with output facts
// or Failure with a message, never both.
type ActionResult struct {
	Success      bool           `json:"success"`
	Output       map[string]any `json:"output,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	Kind         FailureKind    `json:"failureKind,omitempty"`
}

// Succeeded builds a Success result.
func Succeeded(output map[string]any) ActionResult {
	if output == nil {
		output = map[string]any{}
	}

	return ActionResult{Success: true, Output: output}
}

// Failed builds a Failure result.
func Failed(kind FailureKind, message string) ActionResult {
	return ActionResult{Kind: kind, ErrorMessage: message}
}

// ValidationFailure builds a validation Failure from a format string.
func ValidationFailure(format string, args ...any) ActionResult {
	return Failed(FailureValidation, fmt.Sprintf(format, args...))
}

// IsFailure reports whether the result is the Failure variant.
func (r ActionResult) IsFailure() bool {
	return !r.Success
}
