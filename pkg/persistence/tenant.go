package persistence

import (
	"context"

	"github.com/google/uuid"
)

type tenantKey struct{}

// ContextWithTenant returns a context carrying the ambient tenant.
func ContextWithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

// TenantFromContext returns the ambient tenant set by ContextWithTenant.
func TenantFromContext(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(tenantKey{}).(uuid.UUID)
	if !ok || tenantID == uuid.Nil {
		return uuid.Nil, false
	}

	return tenantID, true
}
