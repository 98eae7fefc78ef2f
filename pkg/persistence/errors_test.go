package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStandardizedErrors(t *testing.T) {
	t.Parallel()

	t.Run("entity error unwraps", func(t *testing.T) {
		t.Parallel()

		err := persistence.NewEntityError("Get", "lead", uuid.New(), persistence.ErrNotFound)

		assert.True(t, persistence.IsNotFound(err))
		assert.True(t, errors.Is(err, persistence.ErrNotFound))
		assert.False(t, errors.Is(err, persistence.ErrAlreadyExists))
	})

	t.Run("entity error contains context", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		err := persistence.NewEntityError("Update", "contact", id, persistence.ErrNotFound)

		assert.Contains(t, err.Error(), "Update")
		assert.Contains(t, err.Error(), "contact")
		assert.Contains(t, err.Error(), id.String())
		assert.Contains(t, err.Error(), "record not found")
	})
}

func TestTenantContext(t *testing.T) {
	t.Parallel()

	_, ok := persistence.TenantFromContext(context.Background())
	assert.False(t, ok)

	_, ok = persistence.TenantFromContext(persistence.ContextWithTenant(context.Background(), uuid.Nil))
	assert.False(t, ok)

	tenantID := uuid.New()
	actual, ok := persistence.TenantFromContext(persistence.ContextWithTenant(context.Background(), tenantID))
	assert.True(t, ok)
	assert.Equal(t, tenantID, actual)
}
