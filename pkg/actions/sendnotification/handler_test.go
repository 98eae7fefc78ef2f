package sendnotification_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dukex/crmflow/pkg/actions/sendnotification"
	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/mocks"
	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/dukex/crmflow/pkg/persistence/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.February, 14, 8, 0, 0, 0, time.UTC)

func newHandler(store persistence.Store) *sendnotification.Handler {
	return sendnotification.NewHandler(store, slog.Default()).WithClock(func() time.Time { return fixedNow })
}

func TestHandler_Execute_StoresSentNotification(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(slog.Default())
	tenantID := uuid.New()
	userID := uuid.New()
	dealID := uuid.New()

	actionCtx := models.NewWorkflowActionContext(3, 4, 5, "SendNotification", `{
		"title": "Deal {{DealName}} won",
		"message": "Amount {{Amount}}",
		"type": "deal",
		"actionUrl": "/deals/{{EntityId}}",
		"actionText": "Open deal",
		"icon": "trophy"
	}`, dealID.String(), "Deal", models.TriggerData{
		"TenantId": models.IDValue(tenantID),
		"WonBy":    models.IDValue(userID),
		"DealName": models.StringValue("Acme"),
		"Amount":   models.NumberValue(1250.5),
	})

	result, err := newHandler(store).Execute(context.Background(), actionCtx)
	require.NoError(t, err)
	require.True(t, result.Success, result.ErrorMessage)

	assert.Equal(t, userID.String(), result.Output["sentTo"])
	assert.Equal(t, "Deal Acme won", result.Output["title"])
	assert.Equal(t, "Deal", result.Output["type"])
	assert.Equal(t, fixedNow, result.Output["sentAt"])

	stored, err := store.NotificationByID(uuid.MustParse(result.Output["notificationId"].(string)))
	require.NoError(t, err)

	assert.Equal(t, crm.NotificationSent, stored.Status)
	assert.Equal(t, crm.ChannelInApp, stored.Channel)
	assert.Equal(t, tenantID, stored.TenantID)
	assert.Equal(t, "Amount 1250.5", stored.Message)
	assert.Equal(t, "/deals/"+dealID.String(), stored.ActionURL)
	assert.Equal(t, crm.RelatedDeal, stored.RelatedEntityType)
	require.NotNil(t, stored.RelatedEntityID)
	assert.Equal(t, dealID, *stored.RelatedEntityID)
	assert.JSONEq(t, `{
		"workflowId": 3,
		"executionId": 4,
		"stepId": 5,
		"actionType": "SendNotification",
		"actionUrl": "/deals/`+dealID.String()+`",
		"actionText": "Open deal",
		"icon": "trophy"
	}`, stored.Metadata)
}

func TestHandler_Execute_DefaultsToWorkflowType(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(slog.Default())
	actionCtx := models.NewWorkflowActionContext(1, 1, 1, "SendNotification",
		`{"title":"Heads up","message":"Something happened","type":"carrier-pigeon"}`,
		"42", "Invoice", models.TriggerData{
			"TenantId":  models.IDValue(uuid.New()),
			"UpdatedBy": models.StringValue(uuid.NewString()),
		})

	result, err := newHandler(store).Execute(context.Background(), actionCtx)
	require.NoError(t, err)
	require.True(t, result.Success, result.ErrorMessage)
	assert.Equal(t, "Workflow", result.Output["type"])

	stored, err := store.NotificationByID(uuid.MustParse(result.Output["notificationId"].(string)))
	require.NoError(t, err)
	assert.Empty(t, stored.RelatedEntityType)
	assert.Nil(t, stored.RelatedEntityID)
}

func TestHandler_Execute_ValidationFailures(t *testing.T) {
	t.Parallel()

	ambientTenant := uuid.New()

	tests := []struct {
		name        string
		config      string
		triggerData models.TriggerData
		contains    string
	}{
		{
			name:        "missing title",
			config:      `{"message":"m"}`,
			triggerData: models.TriggerData{"TenantId": models.IDValue(uuid.New()), "UserId": models.IDValue(uuid.New())},
			contains:    "title is required",
		},
		{
			name:        "missing message",
			config:      `{"title":"t"}`,
			triggerData: models.TriggerData{"TenantId": models.IDValue(uuid.New()), "UserId": models.IDValue(uuid.New())},
			contains:    "message is required",
		},
		{
			name:        "malformed configuration",
			config:      `{"title":`,
			triggerData: models.TriggerData{"TenantId": models.IDValue(uuid.New()), "UserId": models.IDValue(uuid.New())},
			contains:    "title is required (configuration missing or malformed)",
		},
		{
			name:        "no user",
			config:      `{"title":"t","message":"m"}`,
			triggerData: models.TriggerData{"TenantId": models.IDValue(uuid.New())},
			contains:    "user could not be resolved",
		},
		{
			name:        "tenant only from trigger data",
			config:      `{"title":"t","message":"m","userId":"` + uuid.NewString() + `"}`,
			triggerData: models.TriggerData{},
			contains:    "tenant could not be resolved",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			notifications := &mocks.MockNotificationStore{}
			store := &mocks.MockStore{}
			store.On("Notifications").Return(notifications)

			actionCtx := models.NewWorkflowActionContext(1, 1, 1, "SendNotification", testCase.config, "42", "Lead", testCase.triggerData)

			ctx := persistence.ContextWithTenant(context.Background(), ambientTenant)

			result, err := newHandler(store).Execute(ctx, actionCtx)
			require.NoError(t, err)
			assert.Equal(t, models.FailureValidation, result.Kind)
			assert.Contains(t, result.ErrorMessage, testCase.contains)
			notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Execute_StoreFailure(t *testing.T) {
	t.Parallel()

	notifications := &mocks.MockNotificationStore{}
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *crm.Notification) bool {
		return n.Status == crm.NotificationSent && n.SentAt != nil
	})).Return(errors.New("unique violation"))

	store := &mocks.MockStore{}
	store.On("Notifications").Return(notifications)

	actionCtx := models.NewWorkflowActionContext(1, 1, 1, "SendNotification", `{"title":"t","message":"m"}`, "42", "Lead",
		models.TriggerData{"TenantId": models.IDValue(uuid.New()), "OwnerId": models.IDValue(uuid.New())})

	result, err := newHandler(store).Execute(context.Background(), actionCtx)
	require.NoError(t, err)
	assert.Equal(t, models.FailureInfrastructure, result.Kind)
	assert.Equal(t, "failed to save notification: unique violation", result.ErrorMessage)
	notifications.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
