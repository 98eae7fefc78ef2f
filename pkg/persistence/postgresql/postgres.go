// Package postgresql provides the PostgreSQL persistence.Store.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/dukex/crmflow/pkg/persistence/sqlbase"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Persistence implements persistence.Store for PostgreSQL.
type Persistence struct {
	db            *sql.DB
	logger        *slog.Logger
	notifications *NotificationRepository
}

// NewPersistence connects to databaseURL and runs pending migrations.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	postgres := &Persistence{
		db:            database,
		logger:        logger,
		notifications: NewNotificationRepository(database),
	}

	// Run migrations on initialization
	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return postgres, nil
}

// Begin opens a database transaction wrapped in a unit of work.
func (p *Persistence) Begin(ctx context.Context) (persistence.UnitOfWork, error) {
	transaction, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	tenantID, hasTenant := persistence.TenantFromContext(ctx)

	return &unitOfWork{
		tx:        transaction,
		logger:    p.logger,
		tenantID:  tenantID,
		hasTenant: hasTenant,
	}, nil
}

func (p *Persistence) Notifications() persistence.NotificationStore {
	return p.notifications
}

// NotificationByID loads a stored notification.
func (p *Persistence) NotificationByID(ctx context.Context, id uuid.UUID) (*crm.Notification, error) {
	return p.notifications.GetByID(ctx, id)
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
