// Package email defines the outbound email collaborator and its transports.
package email

import (
	"context"
	"log/slog"
	"time"
)

// Message is an outbound email.
type Message struct {
	To           string `json:"to"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	IsHTML       bool   `json:"isHtml"`
	TemplateName string `json:"templateName,omitempty"`
}

// Result reports a delivery attempt. A non-empty ErrorMessage means the
// transport refused the message.
type Result struct {
	SentAt       *time.Time
	ErrorMessage string
}

func (r Result) Succeeded() bool {
	return r.ErrorMessage == ""
}

type Transport interface {
	Send(ctx context.Context, message Message) (Result, error)
}

// LogTransport writes messages to the log instead of delivering them.
type LogTransport struct {
	logger *slog.Logger
}

func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{logger: logger.With("module", "email_log_transport")}
}

func (t *LogTransport) Send(ctx context.Context, message Message) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	t.logger.InfoContext(ctx, "Email sent",
		"to", message.To,
		"subject", message.Subject,
		"template", message.TemplateName,
		"body_length", len(message.Body),
	)

	sentAt := time.Now().UTC()

	return Result{SentAt: &sentAt}, nil
}
