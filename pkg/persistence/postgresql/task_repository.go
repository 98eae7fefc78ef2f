package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TaskRepository reads and writes tasks inside a transaction.
type TaskRepository struct {
	tx *sql.Tx
}

func (r *TaskRepository) Add(ctx context.Context, task *crm.Task) error {
	query := `
		INSERT INTO tasks (id, tenant_id, subject, description, priority, owner_id, assignee_ids,
			due_date, related_entity_type, related_entity_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.tx.ExecContext(ctx, query,
		task.ID, task.TenantID, task.Subject, task.Description, string(task.Priority), task.OwnerID,
		pq.Array(uuidStrings(task.AssigneeIDs)), task.DueDate,
		nullString(string(task.RelatedEntityType)), nullString(task.RelatedEntityID), task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

func (r *TaskRepository) Get(ctx context.Context, id uuid.UUID) (*crm.Task, error) {
	query := `
		SELECT id, tenant_id, subject, description, priority, owner_id, assignee_ids,
			due_date, related_entity_type, related_entity_id, created_at
		FROM tasks
		WHERE id = $1
	`

	var (
		task          crm.Task
		priority      string
		assignees     pq.StringArray
		dueDate       sql.NullTime
		relatedType   sql.NullString
		relatedEntity sql.NullString
	)

	err := r.tx.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.TenantID, &task.Subject, &task.Description, &priority, &task.OwnerID, &assignees,
		&dueDate, &relatedType, &relatedEntity, &task.CreatedAt,
	)
	if err != nil {
		return nil, notFound("get", "task", id, err)
	}

	task.Priority = crm.TaskPriority(priority)
	task.RelatedEntityType = crm.RelatedEntityType(relatedType.String)
	task.RelatedEntityID = relatedEntity.String
	task.DueDate = timePtr(dueDate)

	task.AssigneeIDs, err = parseUUIDs(assignees)
	if err != nil {
		return nil, fmt.Errorf("failed to parse assignees of task %s: %w", id, err)
	}

	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *crm.Task) error {
	query := `
		UPDATE tasks
		SET subject = $2, description = $3, priority = $4, owner_id = $5, assignee_ids = $6,
			due_date = $7, related_entity_type = $8, related_entity_id = $9
		WHERE id = $1
	`

	result, err := r.tx.ExecContext(ctx, query,
		task.ID, task.Subject, task.Description, string(task.Priority), task.OwnerID,
		pq.Array(uuidStrings(task.AssigneeIDs)), task.DueDate,
		nullString(string(task.RelatedEntityType)), nullString(task.RelatedEntityID),
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return checkAffected(result, "update", "task", task.ID)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	if len(values) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(values))

	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, nil
}

func timePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}

	t := value.Time

	return &t
}
