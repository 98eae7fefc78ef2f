// Package sendnotification provides the SendNotification action handler.
package sendnotification

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dukex/crmflow/pkg/actions"
	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/dukex/crmflow/pkg/template"
	"github.com/google/uuid"
)

// Handler raises an in-app notification for a user of the trigger's tenant.
type Handler struct {
	store  persistence.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewHandler(store persistence.Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("module", "send_notification_action"),
		now:    time.Now,
	}
}

// WithClock replaces the clock used for timestamps.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now

	return h
}

func (h *Handler) Type() models.ActionType { return models.ActionTypeSendNotification }

func (h *Handler) Name() string { return "Send Notification" }

func (h *Handler) Description() string {
	return "Raises an in-app notification for a user resolved from the configuration or the trigger data."
}

func (h *Handler) Execute(ctx context.Context, actionCtx *models.WorkflowActionContext) (models.ActionResult, error) {
	logger := actions.StepLogger(h.logger, actionCtx)

	config, usedDefaults := actions.Decode[models.NotificationConfig](logger, actionCtx.ActionConfiguration)
	config.Title = strings.TrimSpace(template.Interpolate(config.Title, actionCtx))
	config.Message = strings.TrimSpace(template.Interpolate(config.Message, actionCtx))

	if err := actions.RequireFields(config); err != nil {
		return actions.MissingFieldFailure(err, usedDefaults), nil
	}

	userID, ok := actions.ResolveID(config.UserID, actionCtx, actions.UserCandidateKeys(), nil)
	if !ok {
		return models.ValidationFailure(
			"user could not be resolved from userId or trigger data keys %s",
			strings.Join(actions.UserCandidateKeys(), ", "),
		), nil
	}

	tenantID, ok := actions.ResolveID("", actionCtx, actions.TenantCandidateKeys(), nil)
	if !ok {
		return models.ValidationFailure("tenant could not be resolved from trigger data TenantId"), nil
	}

	notificationType, err := crm.ParseNotificationType(template.Interpolate(config.Type, actionCtx))
	if err != nil {
		notificationType = crm.NotificationTypeWorkflow
	}

	now := h.now()

	notification, err := crm.NewNotification(tenantID, userID, config.Title, config.Message, notificationType, crm.ChannelInApp, now)
	if err != nil {
		if errors.Is(err, crm.ErrInvalidInput) {
			return models.ValidationFailure("failed to create notification: %v", err), nil
		}

		return actions.Fail(ctx, logger, "failed to create notification", err)
	}

	notification.ActionURL = template.Interpolate(config.ActionURL, actionCtx)
	notification.ActionText = template.Interpolate(config.ActionText, actionCtx)
	notification.Icon = config.Icon

	if related, ok := crm.RelatedEntityTypeFor(actionCtx.EntityType); ok {
		if entityID, err := uuid.Parse(actionCtx.EntityID); err == nil {
			notification.RelateTo(related, entityID)
		}
	}

	metadata, err := json.Marshal(buildMetadata(actionCtx, notification))
	if err != nil {
		return actions.Fail(ctx, logger, "failed to encode notification metadata", err)
	}

	notification.Metadata = string(metadata)

	// Stored once, already in the Sent state.
	if err := notification.MarkAsSent(now); err != nil {
		return actions.Fail(ctx, logger, "failed to mark notification as sent", err)
	}

	if err := h.store.Notifications().Create(ctx, notification); err != nil {
		return actions.Fail(ctx, logger, "failed to save notification", err)
	}

	logger.InfoContext(ctx, "Notification sent", "notification_id", notification.ID, "user_id", userID)

	return models.Succeeded(map[string]any{
		"notificationId": notification.ID.String(),
		"sentTo":         userID.String(),
		"sentAt":         *notification.SentAt,
		"title":          notification.Title,
		"type":           string(notification.Type),
	}), nil
}

func buildMetadata(actionCtx *models.WorkflowActionContext, notification *crm.Notification) map[string]any {
	metadata := map[string]any{
		"workflowId":  actionCtx.WorkflowID,
		"executionId": actionCtx.ExecutionID,
		"stepId":      actionCtx.StepID,
		"actionType":  actionCtx.ActionType,
	}

	if notification.ActionURL != "" {
		metadata["actionUrl"] = notification.ActionURL
	}

	if notification.ActionText != "" {
		metadata["actionText"] = notification.ActionText
	}

	if notification.Icon != "" {
		metadata["icon"] = notification.Icon
	}

	return metadata
}
