// Package persistence defines the storage collaborators used by action handlers.
package persistence

import (
	"context"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/google/uuid"
)

// Repository stores one kind of CRM record. Changes made through Add and
// Update are staged until the owning unit of work saves them.
type Repository[T any] interface {
	Add(ctx context.Context, entity T) error
	Get(ctx context.Context, id uuid.UUID) (T, error)
	Update(ctx context.Context, entity T) error
}

// UnitOfWork groups repository changes that are committed together.
type UnitOfWork interface {
	Tasks() Repository[*crm.Task]
	Leads() Repository[*crm.Lead]
	Contacts() Repository[*crm.Contact]

	// CurrentTenant is the tenant the unit of work was opened for, if any.
	CurrentTenant() (uuid.UUID, bool)

	SaveChanges(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// NotificationStore writes notifications outside of a unit of work.
type NotificationStore interface {
	Create(ctx context.Context, notification *crm.Notification) error
	Update(ctx context.Context, notification *crm.Notification) error
}

type Store interface {
	// Begin opens a unit of work bound to the tenant carried by ctx.
	Begin(ctx context.Context) (UnitOfWork, error)
	Notifications() NotificationStore
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
