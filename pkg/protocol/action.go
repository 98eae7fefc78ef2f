// Package protocol defines the contracts between the dispatcher and the action handlers.
package protocol

import (
	"context"

	"github.com/dukex/crmflow/pkg/models"
)

// ActionHandler executes one kind of workflow step.
//
// Execute reports business outcomes in the returned ActionResult. The error
// is non-nil only when ctx was cancelled by the caller.
type ActionHandler interface {
	Type() models.ActionType
	Name() string
	Description() string
	Schema() map[string]any
	Execute(ctx context.Context, actionCtx *models.WorkflowActionContext) (models.ActionResult, error)
}
