// Package memory provides an in-process persistence.Store.
package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/google/uuid"
)

// Store keeps every record in memory. Readers and writers always receive copies.
type Store struct {
	logger *slog.Logger

	mu            sync.RWMutex
	tasks         map[uuid.UUID]*crm.Task
	leads         map[uuid.UUID]*crm.Lead
	contacts      map[uuid.UUID]*crm.Contact
	notifications map[uuid.UUID]*crm.Notification
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		logger:        logger.With("module", "memory_store"),
		tasks:         make(map[uuid.UUID]*crm.Task),
		leads:         make(map[uuid.UUID]*crm.Lead),
		contacts:      make(map[uuid.UUID]*crm.Contact),
		notifications: make(map[uuid.UUID]*crm.Notification),
	}
}

func (s *Store) Begin(ctx context.Context) (persistence.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tenantID, hasTenant := persistence.TenantFromContext(ctx)

	return &unitOfWork{
		store:     s,
		tenantID:  tenantID,
		hasTenant: hasTenant,
		tasks:     newRepository(s, s.tasks, "task", func(t *crm.Task) uuid.UUID { return t.ID }, (*crm.Task).Clone),
		leads:     newRepository(s, s.leads, "lead", func(l *crm.Lead) uuid.UUID { return l.ID }, (*crm.Lead).Clone),
		contacts:  newRepository(s, s.contacts, "contact", func(c *crm.Contact) uuid.UUID { return c.ID }, (*crm.Contact).Clone),
	}, nil
}

func (s *Store) Notifications() persistence.NotificationStore {
	return (*notificationStore)(s)
}

// NotificationByID returns a copy of a stored notification.
func (s *Store) NotificationByID(id uuid.UUID) (*crm.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notification, ok := s.notifications[id]
	if !ok {
		return nil, persistence.NewEntityError("Get", "notification", id, persistence.ErrNotFound)
	}

	return notification.Clone(), nil
}

// TaskCount reports how many tasks have been committed.
func (s *Store) TaskCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}

func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

func (s *Store) Close(_ context.Context) error {
	return nil
}

type notificationStore Store

func (n *notificationStore) Create(ctx context.Context, notification *crm.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.notifications[notification.ID]; exists {
		return persistence.NewEntityError("Create", "notification", notification.ID, persistence.ErrAlreadyExists)
	}

	n.notifications[notification.ID] = notification.Clone()

	return nil
}

func (n *notificationStore) Update(ctx context.Context, notification *crm.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, exists := n.notifications[notification.ID]; !exists {
		return persistence.NewEntityError("Update", "notification", notification.ID, persistence.ErrNotFound)
	}

	n.notifications[notification.ID] = notification.Clone()

	return nil
}
