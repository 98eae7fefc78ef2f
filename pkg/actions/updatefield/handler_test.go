package updatefield_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dukex/crmflow/pkg/actions/updatefield"
	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/dukex/crmflow/pkg/persistence/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createdAt = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	fixedNow  = time.Date(2025, time.March, 3, 15, 0, 0, 0, time.UTC)
)

func seedLead(t *testing.T, store *memory.Store) *crm.Lead {
	t.Helper()

	ctx := context.Background()

	lead, err := crm.NewLead(uuid.New(), "Grace", "Hopper", "grace@example.com", createdAt)
	require.NoError(t, err)
	require.NoError(t, lead.UpdateScore(40, createdAt))

	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.Leads().Add(ctx, lead))
	require.NoError(t, uow.SaveChanges(ctx))

	return lead
}

func loadLead(t *testing.T, store *memory.Store, id uuid.UUID) *crm.Lead {
	t.Helper()

	uow, err := store.Begin(context.Background())
	require.NoError(t, err)

	lead, err := uow.Leads().Get(context.Background(), id)
	require.NoError(t, err)

	return lead
}

func newHandler(store *memory.Store) *updatefield.Handler {
	return updatefield.NewHandler(store, slog.Default()).WithClock(func() time.Time { return fixedNow })
}

func TestHandler_Execute_LeadStatusOnly(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(slog.Default())
	lead := seedLead(t, store)

	actionCtx := models.NewWorkflowActionContext(1, 2, 3, "UpdateField",
		`{"fieldName":"status","fieldValue":"Qualified"}`, lead.ID.String(), "lead", nil)

	result, err := newHandler(store).Execute(context.Background(), actionCtx)
	require.NoError(t, err)
	require.True(t, result.Success, result.ErrorMessage)

	assert.Equal(t, map[string]any{
		"entityType": "Lead",
		"entityId":   lead.ID.String(),
		"fieldName":  "status",
		"newValue":   "Qualified",
		"updatedAt":  fixedNow,
	}, result.Output)

	updated := loadLead(t, store, lead.ID)

	expected := lead.Clone()
	expected.Status = crm.LeadStatusQualified
	expected.UpdatedAt = &fixedNow

	assert.Equal(t, expected, updated)
}

func TestHandler_Execute_LeadFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		config   string
		expected any
		check    func(t *testing.T, lead *crm.Lead)
	}{
		{
			name:     "numeric score",
			config:   `{"fieldName":"Score","fieldValue":85}`,
			expected: 85,
			check:    func(t *testing.T, lead *crm.Lead) { t.Helper(); assert.Equal(t, 85, lead.Score) },
		},
		{
			name:     "interpolated score",
			config:   `{"fieldName":"score","fieldValue":"{{NewScore}}"}`,
			expected: 90,
			check:    func(t *testing.T, lead *crm.Lead) { t.Helper(); assert.Equal(t, 90, lead.Score) },
		},
		{
			name:     "rating",
			config:   `{"fieldName":"rating","fieldValue":"hot"}`,
			expected: "Hot",
			check:    func(t *testing.T, lead *crm.Lead) { t.Helper(); assert.Equal(t, crm.LeadRatingHot, lead.Rating) },
		},
		{
			name:     "description",
			config:   `{"fieldName":"description","fieldValue":"Won via {{EntityType}} workflow {{WorkflowId}}"}`,
			expected: "Won via Lead workflow 1",
			check: func(t *testing.T, lead *crm.Lead) {
				t.Helper()
				assert.Equal(t, "Won via Lead workflow 1", lead.Description)
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			store := memory.NewStore(slog.Default())
			lead := seedLead(t, store)

			actionCtx := models.NewWorkflowActionContext(1, 2, 3, "UpdateField", testCase.config, lead.ID.String(), "Lead",
				models.TriggerData{"NewScore": models.IntValue(90)})

			result, err := newHandler(store).Execute(context.Background(), actionCtx)
			require.NoError(t, err)
			require.True(t, result.Success, result.ErrorMessage)
			assert.Equal(t, testCase.expected, result.Output["newValue"])

			testCase.check(t, loadLead(t, store, lead.ID))
		})
	}
}

func TestHandler_Execute_ContactNotesFromConfigEntity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore(slog.Default())

	contact, err := crm.NewContact(uuid.New(), "Ada", "Lovelace", "", createdAt)
	require.NoError(t, err)

	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.Contacts().Add(ctx, contact))
	require.NoError(t, uow.SaveChanges(ctx))

	actionCtx := models.NewWorkflowActionContext(1, 2, 3, "UpdateField",
		`{"entityType":"Contact","entityId":"{{ContactId}}","fieldName":"notes","fieldValue":"Met on {{CurrentDate}}"}`,
		"42", "Deal", models.TriggerData{"ContactId": models.IDValue(contact.ID)})

	result, err := newHandler(store).Execute(ctx, actionCtx)
	require.NoError(t, err)
	require.True(t, result.Success, result.ErrorMessage)
	assert.Equal(t, "Contact", result.Output["entityType"])

	uow, err = store.Begin(ctx)
	require.NoError(t, err)

	updated, err := uow.Contacts().Get(ctx, contact.ID)
	require.NoError(t, err)
	assert.Contains(t, updated.Notes, "Met on ")
}

func TestHandler_Execute_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		config     string
		entityType string
		contains   string
	}{
		{name: "unparseable status", config: `{"fieldName":"status","fieldValue":"Maybe"}`, entityType: "Lead", contains: `unknown lead status "Maybe"`},
		{name: "non integer score", config: `{"fieldName":"score","fieldValue":"high"}`, entityType: "Lead", contains: "is not an integer"},
		{name: "score out of range", config: `{"fieldName":"score","fieldValue":150}`, entityType: "Lead", contains: "between 0 and 100"},
		{name: "unsupported field", config: `{"fieldName":"email","fieldValue":"x"}`, entityType: "Lead", contains: "supported: description, rating, score, status"},
		{name: "unsupported entity", config: `{"fieldName":"stage","fieldValue":"Won"}`, entityType: "Deal", contains: "supported: contact, lead"},
		{name: "missing field name", config: `{"fieldValue":"x"}`, entityType: "Lead", contains: "fieldName is required"},
		{name: "null field value", config: `{"fieldName":"status","fieldValue":null}`, entityType: "Lead", contains: "fieldValue is required"},
		{name: "malformed configuration", config: `{fieldName}`, entityType: "Lead", contains: "fieldName is required"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			store := memory.NewStore(slog.Default())
			lead := seedLead(t, store)

			actionCtx := models.NewWorkflowActionContext(1, 2, 3, "UpdateField", testCase.config, lead.ID.String(), testCase.entityType, nil)

			result, err := newHandler(store).Execute(context.Background(), actionCtx)
			require.NoError(t, err)
			assert.Equal(t, models.FailureValidation, result.Kind)
			assert.Contains(t, result.ErrorMessage, testCase.contains)

			assert.Equal(t, lead, loadLead(t, store, lead.ID))
		})
	}
}

func TestHandler_Execute_MissingEntity(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(slog.Default())

	actionCtx := models.NewWorkflowActionContext(1, 2, 3, "UpdateField",
		`{"fieldName":"status","fieldValue":"Lost"}`, uuid.NewString(), "Lead", nil)

	result, err := newHandler(store).Execute(context.Background(), actionCtx)
	require.NoError(t, err)
	assert.Equal(t, models.FailureValidation, result.Kind)
	assert.Contains(t, result.ErrorMessage, "not found")

	actionCtx = models.NewWorkflowActionContext(1, 2, 3, "UpdateField",
		`{"fieldName":"status","fieldValue":"Lost"}`, "42", "Lead", nil)

	result, err = newHandler(store).Execute(context.Background(), actionCtx)
	require.NoError(t, err)
	assert.Contains(t, result.ErrorMessage, `entity id "42" is not a valid identifier`)
}

func TestHandler_Execute_TenantScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		ctxTenant     func(lead *crm.Lead) uuid.UUID
		triggerTenant func(lead *crm.Lead) models.TriggerData
		wantSuccess   bool
	}{
		{
			name:      "other tenant from context",
			ctxTenant: func(*crm.Lead) uuid.UUID { return uuid.New() },
		},
		{
			name: "other tenant from trigger data",
			triggerTenant: func(*crm.Lead) models.TriggerData {
				return models.TriggerData{"TenantId": models.IDValue(uuid.New())}
			},
		},
		{
			name:      "trigger data wins over context",
			ctxTenant: func(lead *crm.Lead) uuid.UUID { return lead.TenantID },
			triggerTenant: func(*crm.Lead) models.TriggerData {
				return models.TriggerData{"TenantId": models.StringValue(uuid.NewString())}
			},
		},
		{
			name:        "same tenant",
			ctxTenant:   func(lead *crm.Lead) uuid.UUID { return lead.TenantID },
			wantSuccess: true,
		},
		{
			name:        "no tenant in scope",
			wantSuccess: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			store := memory.NewStore(slog.Default())
			lead := seedLead(t, store)

			ctx := context.Background()
			if testCase.ctxTenant != nil {
				ctx = persistence.ContextWithTenant(ctx, testCase.ctxTenant(lead))
			}

			var triggerData models.TriggerData
			if testCase.triggerTenant != nil {
				triggerData = testCase.triggerTenant(lead)
			}

			actionCtx := models.NewWorkflowActionContext(1, 2, 3, "UpdateField",
				`{"fieldName":"status","fieldValue":"Lost"}`, lead.ID.String(), "Lead", triggerData)

			result, err := newHandler(store).Execute(ctx, actionCtx)
			require.NoError(t, err)

			if testCase.wantSuccess {
				assert.True(t, result.Success)
				assert.Equal(t, crm.LeadStatusLost, loadLead(t, store, lead.ID).Status)

				return
			}

			assert.Equal(t, models.FailureValidation, result.Kind)
			assert.Equal(t, "Lead "+lead.ID.String()+" not found", result.ErrorMessage)
			assert.Equal(t, lead, loadLead(t, store, lead.ID))
		})
	}
}
