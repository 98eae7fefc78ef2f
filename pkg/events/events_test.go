package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dukex/crmflow/pkg/events"
	"github.com/dukex/crmflow/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepTriggered_RoundTrip(t *testing.T) {
	t.Parallel()

	tenant := uuid.New()

	payload := `{
		"id": "evt-1",
		"type": "workflow.step.triggered",
		"workflow_id": 10,
		"execution_id": 20,
		"step_id": 30,
		"tenant_id": "` + tenant.String() + `",
		"action_type": "CreateTask",
		"action_configuration": "{\"subject\":\"Call {{CustomerName}}\"}",
		"entity_id": "42",
		"entity_type": "Deal",
		"trigger_data": {"CustomerName": "Acme", "Amount": 99.5}
	}`

	var event events.StepTriggered

	require.NoError(t, json.Unmarshal([]byte(payload), &event))
	assert.Equal(t, events.StepTriggeredEvent, event.GetType())

	parsed, ok := event.Tenant()
	assert.True(t, ok)
	assert.Equal(t, tenant, parsed)

	actionCtx := event.ActionContext()
	assert.Equal(t, int64(10), actionCtx.WorkflowID)
	assert.Equal(t, int64(20), actionCtx.ExecutionID)
	assert.Equal(t, int64(30), actionCtx.StepID)
	assert.Equal(t, "CreateTask", actionCtx.ActionType)
	assert.Equal(t, `{"subject":"Call {{CustomerName}}"}`, actionCtx.ActionConfiguration)

	value, ok := actionCtx.Trigger("CustomerName")
	assert.True(t, ok)
	assert.Equal(t, "Acme", value.String())
}

func TestStepTriggered_Tenant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tenantID string
		ok       bool
	}{
		{name: "absent", tenantID: ""},
		{name: "malformed", tenantID: "tenant-1"},
		{name: "nil", tenantID: uuid.Nil.String()},
		{name: "valid", tenantID: uuid.NewString(), ok: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, ok := events.StepTriggered{TenantID: testCase.tenantID}.Tenant()
			assert.Equal(t, testCase.ok, ok)
		})
	}
}

func TestStepFinished(t *testing.T) {
	t.Parallel()

	triggered := events.StepTriggered{
		BaseEvent:  events.NewBaseEvent(events.StepTriggeredEvent, 1, 2, 3),
		ActionType: "SendEmail",
	}

	completed := events.StepFinished(triggered, models.Succeeded(map[string]any{"sentTo": "a@b.c"}), 1500*time.Millisecond, "worker-1")
	require.IsType(t, events.StepCompleted{}, completed)

	done := completed.(events.StepCompleted)
	assert.Equal(t, events.StepCompletedEvent, done.Type)
	assert.Equal(t, int64(3), done.StepID)
	assert.Equal(t, "worker-1", done.WorkerID)
	assert.Equal(t, int64(1500), done.DurationMs)
	assert.Equal(t, "a@b.c", done.Output["sentTo"])

	failed := events.StepFinished(triggered, models.ValidationFailure("to is required"), time.Second, "worker-1")
	require.IsType(t, events.StepFailed{}, failed)

	failure := failed.(events.StepFailed)
	assert.Equal(t, events.StepFailedEvent, failure.GetType())
	assert.Equal(t, models.FailureValidation, failure.FailureKind)
	assert.Equal(t, "to is required", failure.Error)
	assert.NotEqual(t, triggered.ID, failure.ID)
}
