package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukex/crmflow/pkg/models"
)

// StepLogger annotates logger with the identifiers of the step being executed.
func StepLogger(logger *slog.Logger, actionCtx *models.WorkflowActionContext) *slog.Logger {
	return logger.With(
		"action_type", actionCtx.ActionType,
		"workflow_id", actionCtx.WorkflowID,
		"execution_id", actionCtx.ExecutionID,
		"step_id", actionCtx.StepID,
	)
}

// IsCancellation reports whether err comes from the caller giving up on ctx.
func IsCancellation(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}

	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}

// Fail turns a collaborator error into an infrastructure failure, logging it
// with the step identifiers. Caller cancellation is returned as an error
// instead so it reaches the caller.
func Fail(ctx context.Context, logger *slog.Logger, what string, err error) (models.ActionResult, error) {
	if IsCancellation(ctx, err) {
		return models.ActionResult{}, err
	}

	logger.ErrorContext(ctx, what, "error", err)

	return models.Failed(models.FailureInfrastructure, fmt.Sprintf("%s: %v", what, err)), nil
}
