package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/google/uuid"
)

// LeadRepository reads and writes leads inside a transaction.
type LeadRepository struct {
	tx *sql.Tx
}

func (r *LeadRepository) Add(ctx context.Context, lead *crm.Lead) error {
	query := `
		INSERT INTO leads (id, tenant_id, first_name, last_name, company_name, email, status, rating,
			score, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.tx.ExecContext(ctx, query,
		lead.ID, lead.TenantID, lead.FirstName, lead.LastName, lead.CompanyName, lead.Email,
		string(lead.Status), string(lead.Rating), lead.Score, lead.Description, lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) Get(ctx context.Context, id uuid.UUID) (*crm.Lead, error) {
	query := `
		SELECT id, tenant_id, first_name, last_name, company_name, email, status, rating,
			score, description, created_at, updated_at
		FROM leads
		WHERE id = $1
	`

	var (
		lead      crm.Lead
		status    string
		rating    string
		updatedAt sql.NullTime
	)

	err := r.tx.QueryRowContext(ctx, query, id).Scan(
		&lead.ID, &lead.TenantID, &lead.FirstName, &lead.LastName, &lead.CompanyName, &lead.Email,
		&status, &rating, &lead.Score, &lead.Description, &lead.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, notFound("get", "lead", id, err)
	}

	lead.Status = crm.LeadStatus(status)
	lead.Rating = crm.LeadRating(rating)
	lead.UpdatedAt = timePtr(updatedAt)

	return &lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *crm.Lead) error {
	query := `
		UPDATE leads
		SET first_name = $2, last_name = $3, company_name = $4, email = $5, status = $6, rating = $7,
			score = $8, description = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.tx.ExecContext(ctx, query,
		lead.ID, lead.FirstName, lead.LastName, lead.CompanyName, lead.Email,
		string(lead.Status), string(lead.Rating), lead.Score, lead.Description, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}

	return checkAffected(result, "update", "lead", lead.ID)
}
