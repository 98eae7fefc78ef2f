package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/google/uuid"
)

// NotificationRepository writes notifications outside of a unit of work.
type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *crm.Notification) error {
	query := `
		INSERT INTO notifications (id, tenant_id, user_id, title, message, type, channel, status,
			related_entity_type, related_entity_id, action_url, action_text, icon, metadata, created_at, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(ctx, query,
		notification.ID, notification.TenantID, notification.UserID, notification.Title, notification.Message,
		string(notification.Type), string(notification.Channel), string(notification.Status),
		nullString(string(notification.RelatedEntityType)), notification.RelatedEntityID,
		nullString(notification.ActionURL), nullString(notification.ActionText), nullString(notification.Icon),
		nullString(notification.Metadata), notification.CreatedAt, notification.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) Update(ctx context.Context, notification *crm.Notification) error {
	query := `
		UPDATE notifications
		SET title = $2, message = $3, type = $4, status = $5, metadata = $6, sent_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		notification.ID, notification.Title, notification.Message, string(notification.Type),
		string(notification.Status), nullString(notification.Metadata), notification.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}

	return checkAffected(result, "update", "notification", notification.ID)
}

// GetByID loads a notification.
func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*crm.Notification, error) {
	query := `
		SELECT id, tenant_id, user_id, title, message, type, channel, status, related_entity_type,
			related_entity_id, action_url, action_text, icon, metadata, created_at, sent_at
		FROM notifications
		WHERE id = $1
	`

	var (
		notification  crm.Notification
		notifType     string
		channel       string
		status        string
		relatedType   sql.NullString
		relatedEntity uuid.NullUUID
		actionURL     sql.NullString
		actionText    sql.NullString
		icon          sql.NullString
		metadata      sql.NullString
		sentAt        sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&notification.ID, &notification.TenantID, &notification.UserID, &notification.Title, &notification.Message,
		&notifType, &channel, &status, &relatedType, &relatedEntity, &actionURL, &actionText, &icon, &metadata,
		&notification.CreatedAt, &sentAt,
	)
	if err != nil {
		return nil, notFound("get", "notification", id, err)
	}

	notification.Type = crm.NotificationType(notifType)
	notification.Channel = crm.NotificationChannel(channel)
	notification.Status = crm.NotificationStatus(status)
	notification.RelatedEntityType = crm.RelatedEntityType(relatedType.String)
	notification.ActionURL = actionURL.String
	notification.ActionText = actionText.String
	notification.Icon = icon.String
	notification.Metadata = metadata.String
	notification.SentAt = timePtr(sentAt)

	if relatedEntity.Valid {
		notification.RelatedEntityID = &relatedEntity.UUID
	}

	return &notification, nil
}
