package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/google/uuid"
)

type unitOfWork struct {
	tx        *sql.Tx
	logger    *slog.Logger
	tenantID  uuid.UUID
	hasTenant bool
}

func (u *unitOfWork) Tasks() persistence.Repository[*crm.Task] {
	return &TaskRepository{tx: u.tx}
}

func (u *unitOfWork) Leads() persistence.Repository[*crm.Lead] {
	return &LeadRepository{tx: u.tx}
}

func (u *unitOfWork) Contacts() persistence.Repository[*crm.Contact] {
	return &ContactRepository{tx: u.tx}
}

func (u *unitOfWork) CurrentTenant() (uuid.UUID, bool) {
	return u.tenantID, u.hasTenant
}

func (u *unitOfWork) SaveChanges(_ context.Context) error {
	err := u.tx.Commit()
	if errors.Is(err, sql.ErrTxDone) {
		return persistence.ErrUnitOfWorkClosed
	}

	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	err := u.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		u.logger.ErrorContext(ctx, "failed to rollback transaction", "error", err)

		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// notFound translates sql.ErrNoRows and zero affected rows into persistence.ErrNotFound.
func notFound(op, entity string, id uuid.UUID, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.NewEntityError(op, entity, id, persistence.ErrNotFound)
	}

	return fmt.Errorf("failed to %s %s %s: %w", op, entity, id, err)
}

func checkAffected(result sql.Result, op, entity string, id uuid.UUID) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if affected == 0 {
		return persistence.NewEntityError(op, entity, id, persistence.ErrNotFound)
	}

	return nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
