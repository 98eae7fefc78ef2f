// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"github.com/dukex/crmflow/pkg/events"
	"github.com/dukex/crmflow/pkg/models"
)

// CreateTestActionContext creates a CreateTask step context with default values that can be overridden.
func CreateTestActionContext(overrides ...func(*models.WorkflowActionContext)) *models.WorkflowActionContext {
	actionCtx := models.NewWorkflowActionContext(1, 2, 3, models.ActionTypeCreateTask.String(), "{}", "42", "Deal", nil)

	for _, override := range overrides {
		override(actionCtx)
	}

	return actionCtx
}

// WithActionType sets the step's action type.
func WithActionType(actionType string) func(*models.WorkflowActionContext) {
	return func(a *models.WorkflowActionContext) {
		a.ActionType = actionType
	}
}

// WithConfiguration sets the raw JSON configuration.
func WithConfiguration(configuration string) func(*models.WorkflowActionContext) {
	return func(a *models.WorkflowActionContext) {
		a.ActionConfiguration = configuration
	}
}

// WithEntity sets the entity the workflow was triggered for.
func WithEntity(entityType, entityID string) func(*models.WorkflowActionContext) {
	return func(a *models.WorkflowActionContext) {
		a.EntityType = entityType
		a.EntityID = entityID
	}
}

// WithTriggerData replaces the trigger data with a copy of data.
func WithTriggerData(data models.TriggerData) func(*models.WorkflowActionContext) {
	return func(a *models.WorkflowActionContext) {
		a.TriggerData = data.Clone()
	}
}

// WithIDs sets the workflow, execution and step identifiers.
func WithIDs(workflowID, executionID, stepID int64) func(*models.WorkflowActionContext) {
	return func(a *models.WorkflowActionContext) {
		a.WorkflowID = workflowID
		a.ExecutionID = executionID
		a.StepID = stepID
	}
}

// CreateTestStepTriggered wraps a step context built from overrides in a triggered event.
func CreateTestStepTriggered(tenantID string, overrides ...func(*models.WorkflowActionContext)) *events.StepTriggered {
	actionCtx := CreateTestActionContext(overrides...)

	return &events.StepTriggered{
		BaseEvent:           events.NewBaseEvent(events.StepTriggeredEvent, actionCtx.WorkflowID, actionCtx.ExecutionID, actionCtx.StepID),
		TenantID:            tenantID,
		ActionType:          actionCtx.ActionType,
		ActionConfiguration: actionCtx.ActionConfiguration,
		EntityID:            actionCtx.EntityID,
		EntityType:          actionCtx.EntityType,
		TriggerData:         actionCtx.TriggerData,
	}
}
