// Package events defines the workflow step events exchanged with the worker.
package events

import (
	"time"

	"github.com/dukex/crmflow/pkg/models"
	"github.com/google/uuid"
)

type EventType string

// Typed is implemented by every event.
type Typed interface {
	GetType() EventType
}

// Topic carries every step event.
const Topic = "crmflow.workflow.steps"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	StepTriggeredEvent EventType = "workflow.step.triggered"
	StepCompletedEvent EventType = "workflow.step.completed"
	StepFailedEvent    EventType = "workflow.step.failed"
)

type BaseEvent struct {
	ID          string         `json:"id"`
	Type        EventType      `json:"type"`
	Timestamp   time.Time      `json:"timestamp"`
	WorkflowID  int64          `json:"workflow_id"`
	ExecutionID int64          `json:"execution_id"`
	StepID      int64          `json:"step_id"`
	WorkerID    string         `json:"worker_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// StepTriggered asks a worker to execute one workflow step.
type StepTriggered struct {
	BaseEvent

	TenantID            string             `json:"tenant_id,omitempty"`
	ActionType          string             `json:"action_type"`
	ActionConfiguration string             `json:"action_configuration"`
	EntityID            string             `json:"entity_id"`
	EntityType          string             `json:"entity_type"`
	TriggerData         models.TriggerData `json:"trigger_data,omitempty"`
}

func (s StepTriggered) GetType() EventType {
	return StepTriggeredEvent
}

// ActionContext builds the execution context the dispatcher consumes.
func (s StepTriggered) ActionContext() *models.WorkflowActionContext {
	return models.NewWorkflowActionContext(
		s.WorkflowID,
		s.ExecutionID,
		s.StepID,
		s.ActionType,
		s.ActionConfiguration,
		s.EntityID,
		s.EntityType,
		s.TriggerData,
	)
}

// Tenant parses TenantID. An absent or malformed id yields false.
func (s StepTriggered) Tenant() (uuid.UUID, bool) {
	id, err := uuid.Parse(s.TenantID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}

	return id, true
}

type StepCompleted struct {
	BaseEvent

	ActionType string         `json:"action_type"`
	Output     map[string]any `json:"output,omitempty"`
	DurationMs int64          `json:"duration_ms"`
}

func (s StepCompleted) GetType() EventType {
	return StepCompletedEvent
}

type StepFailed struct {
	BaseEvent

	ActionType  string             `json:"action_type"`
	FailureKind models.FailureKind `json:"failure_kind"`
	Error       string             `json:"error"`
	DurationMs  int64              `json:"duration_ms"`
}

func (s StepFailed) GetType() EventType {
	return StepFailedEvent
}

func NewBaseEvent(eventType EventType, workflowID, executionID, stepID int64) BaseEvent {
	return BaseEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		WorkflowID:  workflowID,
		ExecutionID: executionID,
		StepID:      stepID,
		Metadata:    make(map[string]any),
	}
}

// StepFinished builds the completion or failure event for a step result.
func StepFinished(triggered StepTriggered, result models.ActionResult, duration time.Duration, workerID string) Typed {
	if result.IsFailure() {
		event := StepFailed{
			BaseEvent:   NewBaseEvent(StepFailedEvent, triggered.WorkflowID, triggered.ExecutionID, triggered.StepID),
			ActionType:  triggered.ActionType,
			FailureKind: result.Kind,
			Error:       result.ErrorMessage,
			DurationMs:  duration.Milliseconds(),
		}
		event.WorkerID = workerID

		return event
	}

	event := StepCompleted{
		BaseEvent:  NewBaseEvent(StepCompletedEvent, triggered.WorkflowID, triggered.ExecutionID, triggered.StepID),
		ActionType: triggered.ActionType,
		Output:     result.Output,
		DurationMs: duration.Milliseconds(),
	}
	event.WorkerID = workerID

	return event
}
