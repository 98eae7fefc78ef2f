package memory_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/dukex/crmflow/pkg/persistence/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLead(t *testing.T, tenantID uuid.UUID) *crm.Lead {
	t.Helper()

	lead, err := crm.NewLead(tenantID, "Grace", "Hopper", "grace@example.com", time.Now())
	require.NoError(t, err)

	return lead
}

func TestStore_UnitOfWorkCommit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore(slog.Default())
	tenantID := uuid.New()
	lead := newLead(t, tenantID)

	uow, err := store.Begin(persistence.ContextWithTenant(ctx, tenantID))
	require.NoError(t, err)

	current, ok := uow.CurrentTenant()
	assert.True(t, ok)
	assert.Equal(t, tenantID, current)

	require.NoError(t, uow.Leads().Add(ctx, lead))

	staged, err := uow.Leads().Get(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.Email, staged.Email)

	other, err := store.Begin(ctx)
	require.NoError(t, err)

	_, err = other.Leads().Get(ctx, lead.ID)
	require.ErrorIs(t, err, persistence.ErrNotFound)

	_, ok = other.CurrentTenant()
	assert.False(t, ok)

	require.NoError(t, uow.SaveChanges(ctx))
	require.ErrorIs(t, uow.SaveChanges(ctx), persistence.ErrUnitOfWorkClosed)

	committed, err := other.Leads().Get(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, committed.ID)
}

func TestStore_RollbackDiscardsChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore(slog.Default())

	task, err := crm.NewTask(uuid.New(), uuid.New(), "Follow up", "", "", nil, time.Now())
	require.NoError(t, err)

	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.Tasks().Add(ctx, task))
	require.NoError(t, uow.Rollback(ctx))

	assert.Equal(t, 0, store.TaskCount())
}

func TestStore_UpdateAndIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore(slog.Default())
	contact, err := crm.NewContact(uuid.New(), "Ada", "Lovelace", "", time.Now())
	require.NoError(t, err)

	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.Contacts().Add(ctx, contact))
	require.NoError(t, uow.SaveChanges(ctx))

	contact.Notes = "mutated after save"

	uow, err = store.Begin(ctx)
	require.NoError(t, err)

	loaded, err := uow.Contacts().Get(ctx, contact.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Notes)

	require.NoError(t, loaded.UpdateNotes("prefers email", time.Now()))
	require.NoError(t, uow.Contacts().Update(ctx, loaded))
	require.NoError(t, uow.SaveChanges(ctx))

	uow, err = store.Begin(ctx)
	require.NoError(t, err)

	reloaded, err := uow.Contacts().Get(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "prefers email", reloaded.Notes)

	missing, err := crm.NewContact(uuid.New(), "No", "Body", "", time.Now())
	require.NoError(t, err)
	require.ErrorIs(t, uow.Contacts().Update(ctx, missing), persistence.ErrNotFound)
	require.ErrorIs(t, uow.Contacts().Add(ctx, reloaded), persistence.ErrAlreadyExists)
}

func TestStore_Notifications(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore(slog.Default())

	notification, err := crm.NewNotification(uuid.New(), uuid.New(), "Title", "Message", crm.NotificationTypeWorkflow, crm.ChannelInApp, time.Now())
	require.NoError(t, err)

	require.ErrorIs(t, store.Notifications().Update(ctx, notification), persistence.ErrNotFound)
	require.NoError(t, store.Notifications().Create(ctx, notification))
	require.ErrorIs(t, store.Notifications().Create(ctx, notification), persistence.ErrAlreadyExists)

	require.NoError(t, notification.MarkAsSent(time.Now()))
	require.NoError(t, store.Notifications().Update(ctx, notification))

	stored, err := store.NotificationByID(notification.ID)
	require.NoError(t, err)
	assert.Equal(t, crm.NotificationSent, stored.Status)
}

func TestStore_BeginWithCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := memory.NewStore(slog.Default()).Begin(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
