package mocks

import (
	"context"

	"github.com/dukex/crmflow/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockActionHandler is a mock implementation of protocol.ActionHandler interface.
type MockActionHandler struct {
	mock.Mock

	ActionType models.ActionType
}

func (m *MockActionHandler) Type() models.ActionType { return m.ActionType }

func (m *MockActionHandler) Name() string { return "Mock " + string(m.ActionType) }

func (m *MockActionHandler) Description() string { return "mock handler" }

func (m *MockActionHandler) Schema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"value"},
		"properties": map[string]any{
			"value": map[string]any{"type": "string"},
		},
	}
}

func (m *MockActionHandler) Execute(
	ctx context.Context,
	actionCtx *models.WorkflowActionContext,
) (models.ActionResult, error) {
	args := m.Called(ctx, actionCtx)

	return args.Get(0).(models.ActionResult), args.Error(1)
}
