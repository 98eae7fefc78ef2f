// Package sendemail provides the SendEmail action handler.
package sendemail

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dukex/crmflow/pkg/actions"
	"github.com/dukex/crmflow/pkg/email"
	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/template"
)

// Handler sends an HTML email through the configured transport.
type Handler struct {
	transport email.Transport
	logger    *slog.Logger
}

func NewHandler(transport email.Transport, logger *slog.Logger) *Handler {
	return &Handler{
		transport: transport,
		logger:    logger.With("module", "send_email_action"),
	}
}

func (h *Handler) Type() models.ActionType { return models.ActionTypeSendEmail }

func (h *Handler) Name() string { return "Send Email" }

func (h *Handler) Description() string {
	return "Sends an HTML email whose recipient, subject and body support {{Token}} placeholders."
}

func (h *Handler) Execute(ctx context.Context, actionCtx *models.WorkflowActionContext) (models.ActionResult, error) {
	logger := actions.StepLogger(h.logger, actionCtx)

	config, usedDefaults := actions.Decode[models.EmailConfig](logger, actionCtx.ActionConfiguration)
	config.To = strings.TrimSpace(template.Interpolate(config.To, actionCtx))
	config.Subject = strings.TrimSpace(template.Interpolate(config.Subject, actionCtx))

	if err := actions.RequireFields(config); err != nil {
		return actions.MissingFieldFailure(err, usedDefaults), nil
	}

	message := email.Message{
		To:           config.To,
		Subject:      config.Subject,
		Body:         template.Interpolate(config.Body, actionCtx),
		IsHTML:       true,
		TemplateName: config.TemplateName,
	}

	result, err := h.transport.Send(ctx, message)
	if err != nil {
		return actions.Fail(ctx, logger, "failed to send email", err)
	}

	if !result.Succeeded() {
		logger.WarnContext(ctx, "Email transport rejected message", "to", message.To, "error", result.ErrorMessage)

		return models.Failed(models.FailureInfrastructure, result.ErrorMessage), nil
	}

	sentAt := time.Now().UTC()
	if result.SentAt != nil {
		sentAt = *result.SentAt
	}

	logger.InfoContext(ctx, "Email sent", "to", message.To)

	return models.Succeeded(map[string]any{
		"sentTo":  message.To,
		"sentAt":  sentAt,
		"subject": message.Subject,
	}), nil
}
