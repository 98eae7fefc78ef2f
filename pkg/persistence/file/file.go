// Package file provides a persistence.Store keeping one JSON document per
// record under a root directory.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/google/uuid"
)

const (
	tasksDir         = "tasks"
	leadsDir         = "leads"
	contactsDir      = "contacts"
	notificationsDir = "notifications"
)

// Store implements persistence.Store on the file system. Commits are
// serialized by a process-wide lock; the layout is not safe for several
// processes sharing one root.
type Store struct {
	root   string
	logger *slog.Logger

	mu sync.RWMutex
}

// NewStore opens root, accepting an optional file:// prefix, and creates the
// record directories.
func NewStore(root string, logger *slog.Logger) (*Store, error) {
	cleanRoot := filepath.Clean(strings.TrimPrefix(root, "file://"))

	for _, dir := range []string{tasksDir, leadsDir, contactsDir, notificationsDir} {
		if err := os.MkdirAll(filepath.Join(cleanRoot, dir), 0750); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
	}

	return &Store{
		root:   cleanRoot,
		logger: logger.With("module", "file_store", "root", cleanRoot),
	}, nil
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
		tasks:     newRepository[*crm.Task](s, tasksDir, "task", func(t *crm.Task) uuid.UUID { return t.ID }, func() *crm.Task { return &crm.Task{} }),
		leads:     newRepository[*crm.Lead](s, leadsDir, "lead", func(l *crm.Lead) uuid.UUID { return l.ID }, func() *crm.Lead { return &crm.Lead{} }),
		contacts:  newRepository[*crm.Contact](s, contactsDir, "contact", func(c *crm.Contact) uuid.UUID { return c.ID }, func() *crm.Contact { return &crm.Contact{} }),
	}, nil
}

func (s *Store) Notifications() persistence.NotificationStore {
	return (*notificationStore)(s)
}

// NotificationByID reads a stored notification.
func (s *Store) NotificationByID(id uuid.UUID) (*crm.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var notification crm.Notification
	if err := s.read(notificationsDir, "notification", id, &notification); err != nil {
		return nil, err
	}

	return &notification, nil
}

// HealthCheck verifies the root directory still exists.
func (s *Store) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(s.root); err != nil {
		return fmt.Errorf("file store root unavailable: %w", err)
	}

	return nil
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (s *Store) Close(_ context.Context) error {
	return nil
}

func (s *Store) path(dir string, id uuid.UUID) string {
	return filepath.Join(s.root, dir, id.String()+".json")
}

func (s *Store) exists(dir string, id uuid.UUID) bool {
	_, err := os.Stat(s.path(dir, id))

	return err == nil
}

func (s *Store) read(dir, entity string, id uuid.UUID, target any) error {
	body, err := os.ReadFile(s.path(dir, id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return persistence.NewEntityError("Get", entity, id, persistence.ErrNotFound)
		}

		return fmt.Errorf("failed to read %s %s: %w", entity, id, err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to unmarshal %s %s: %w", entity, id, err)
	}

	return nil
}

// write replaces the document atomically through a temporary file.
func (s *Store) write(dir, entity string, id uuid.UUID, record any) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", entity, id, err)
	}

	target := s.path(dir, id)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s %s: %w", entity, id, err)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("failed to write %s %s: %w", entity, id, err)
	}

	return nil
}

type notificationStore Store

func (n *notificationStore) Create(ctx context.Context, notification *crm.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := (*Store)(n)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exists(notificationsDir, notification.ID) {
		return persistence.NewEntityError("Create", "notification", notification.ID, persistence.ErrAlreadyExists)
	}

	return s.write(notificationsDir, "notification", notification.ID, notification)
}

func (n *notificationStore) Update(ctx context.Context, notification *crm.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := (*Store)(n)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.exists(notificationsDir, notification.ID) {
		return persistence.NewEntityError("Update", "notification", notification.ID, persistence.ErrNotFound)
	}

	return s.write(notificationsDir, "notification", notification.ID, notification)
}
