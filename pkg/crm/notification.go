package crm

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notification is a message addressed to one user of a tenant.
type Notification struct {
	ID                uuid.UUID           `json:"id"`
	TenantID          uuid.UUID           `json:"tenantId"`
	UserID            uuid.UUID           `json:"userId"`
	Title             string              `json:"title"`
	Message           string              `json:"message"`
	Type              NotificationType    `json:"type"`
	Channel           NotificationChannel `json:"channel"`
	Status            NotificationStatus  `json:"status"`
	RelatedEntityType RelatedEntityType   `json:"relatedEntityType,omitempty"`
	RelatedEntityID   *uuid.UUID          `json:"relatedEntityId,omitempty"`
	ActionURL         string              `json:"actionUrl,omitempty"`
	ActionText        string              `json:"actionText,omitempty"`
	Icon              string              `json:"icon,omitempty"`
	Metadata          string              `json:"metadata,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	SentAt            *time.Time          `json:"sentAt,omitempty"`
}

func NewNotification(
	tenantID, userID uuid.UUID,
	title, message string,
	notificationType NotificationType,
	channel NotificationChannel,
	now time.Time,
) (*Notification, error) {
	switch {
	case tenantID == uuid.Nil:
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	case userID == uuid.Nil:
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	case strings.TrimSpace(title) == "":
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	case strings.TrimSpace(message) == "":
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	return &Notification{
		ID:        uuid.New(),
		TenantID:  tenantID,
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notificationType,
		Channel:   channel,
		Status:    NotificationPending,
		CreatedAt: now.UTC(),
	}, nil
}

func (n *Notification) RelateTo(entityType RelatedEntityType, entityID uuid.UUID) {
	n.RelatedEntityType = entityType
	n.RelatedEntityID = &entityID
}

// MarkAsSent moves a pending notification to Sent.
func (n *Notification) MarkAsSent(now time.Time) error {
	if n.Status != NotificationPending {
		return fmt.Errorf("%w: notification is %s", ErrInvalidTransition, n.Status)
	}

	sent := now.UTC()
	n.Status = NotificationSent
	n.SentAt = &sent

	return nil
}

func (n *Notification) Clone() *Notification {
	c := *n

	if n.RelatedEntityID != nil {
		id := *n.RelatedEntityID
		c.RelatedEntityID = &id
	}

	if n.SentAt != nil {
		sent := *n.SentAt
		c.SentAt = &sent
	}

	return &c
}
