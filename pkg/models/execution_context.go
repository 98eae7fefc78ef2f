package models

// WorkflowActionContext describes one step invocation of a workflow run.
// Handlers only read it; it is built fresh for every invocation.
type WorkflowActionContext struct {
	WorkflowID          int64       `json:"workflowId"`
	ExecutionID         int64       `json:"executionId"`
	StepID              int64       `json:"stepId"`
	ActionType          string      `json:"actionType"`
	ActionConfiguration string      `json:"actionConfiguration"`
	EntityID            string      `json:"entityId"`
	EntityType          string      `json:"entityType"`
	TriggerData         TriggerData `json:"triggerData,omitempty"`
}

// NewWorkflowActionContext builds a context owning its own copy of triggerData.
func NewWorkflowActionContext(
	workflowID, executionID, stepID int64,
	actionType, configuration string,
	entityID, entityType string,
	triggerData TriggerData,
) *WorkflowActionContext {
	return &WorkflowActionContext{
		WorkflowID:          workflowID,
		ExecutionID:         executionID,
		StepID:              stepID,
		ActionType:          actionType,
		ActionConfiguration: configuration,
		EntityID:            entityID,
		EntityType:          entityType,
		TriggerData:         triggerData.Clone(),
	}
}

// Trigger returns the trigger-data value stored under key.
func (c *WorkflowActionContext) Trigger(key string) (TriggerValue, bool) {
	if c == nil || c.TriggerData == nil {
		return TriggerValue{}, false
	}

	v, ok := c.TriggerData[key]

	return v, ok
}
