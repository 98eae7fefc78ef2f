package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/google/uuid"
)

// ContactRepository reads and writes contacts inside a transaction.
type ContactRepository struct {
	tx *sql.Tx
}

func (r *ContactRepository) Add(ctx context.Context, contact *crm.Contact) error {
	query := `
		INSERT INTO contacts (id, tenant_id, first_name, last_name, email, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.tx.ExecContext(ctx, query,
		contact.ID, contact.TenantID, contact.FirstName, contact.LastName, contact.Email, contact.Notes,
		contact.CreatedAt, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}

	return nil
}

func (r *ContactRepository) Get(ctx context.Context, id uuid.UUID) (*crm.Contact, error) {
	query := `
		SELECT id, tenant_id, first_name, last_name, email, notes, created_at, updated_at
		FROM contacts
		WHERE id = $1
	`

	var (
		contact   crm.Contact
		updatedAt sql.NullTime
	)

	err := r.tx.QueryRowContext(ctx, query, id).Scan(
		&contact.ID, &contact.TenantID, &contact.FirstName, &contact.LastName, &contact.Email, &contact.Notes,
		&contact.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, notFound("get", "contact", id, err)
	}

	contact.UpdatedAt = timePtr(updatedAt)

	return &contact, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact *crm.Contact) error {
	query := `
		UPDATE contacts
		SET first_name = $2, last_name = $3, email = $4, notes = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.tx.ExecContext(ctx, query,
		contact.ID, contact.FirstName, contact.LastName, contact.Email, contact.Notes, contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	return checkAffected(result, "update", "contact", contact.ID)
}
