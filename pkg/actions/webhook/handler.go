// Package webhook provides the CallWebhook action handler.
package webhook

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dukex/crmflow/pkg/actions"
	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/template"
)

const (
	DefaultTimeout = 30 * time.Second
	// MaxTimeout caps timeoutSeconds.
	MaxTimeout         = 10 * time.Minute
	DefaultContentType = "application/json"
	UserAgent          = "crmflow-webhook/1.0"

	maxResponseBodyLength = 2000
	// maxResponseReadBytes bounds how much of the body is read before truncation.
	maxResponseReadBytes = 1 << 20
)

// ErrWebhookTimeout is the cause attached to the call context when the
// step's own timer fires.
var ErrWebhookTimeout = errors.New("webhook timeout")

var supportedMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
}

// Handler calls an external HTTP endpoint. The client is shared by every
// call and must be safe for concurrent use; NewHandler panics when it is nil.
type Handler struct {
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

func NewHandler(client *http.Client, logger *slog.Logger) *Handler {
	if client == nil {
		panic("webhook: nil http client")
	}

	return &Handler{
		client: client,
		logger: logger.With("module", "webhook_action"),
		now:    time.Now,
	}
}

func callTimeout(seconds *int) time.Duration {
	switch {
	case seconds == nil || *seconds <= 0:
		return DefaultTimeout
	case *seconds >= int(MaxTimeout/time.Second):
		return MaxTimeout
	default:
		return time.Duration(*seconds) * time.Second
	}
}

// WithClock replaces the clock used for timestamps.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now

	return h
}

func (h *Handler) Type() models.ActionType { return models.ActionTypeWebhookCall }

func (h *Handler) Name() string { return "Call Webhook" }

func (h *Handler) Description() string {
	return "Calls an external HTTP endpoint with optional authentication and a templated or default JSON body."
}

func (h *Handler) Execute(ctx context.Context, actionCtx *models.WorkflowActionContext) (models.ActionResult, error) {
	logger := actions.StepLogger(h.logger, actionCtx)

	config, usedDefaults := actions.Decode[models.WebhookConfig](logger, actionCtx.ActionConfiguration)
	config.URL = strings.TrimSpace(template.Interpolate(config.URL, actionCtx))

	if err := actions.RequireFields(config); err != nil {
		return actions.MissingFieldFailure(err, usedDefaults), nil
	}

	target, err := parseURL(config.URL)
	if err != nil {
		return models.ValidationFailure("invalid webhook url %q: %v", config.URL, err), nil
	}

	method, ok := parseMethod(config.Method)
	if !ok {
		return models.ValidationFailure(
			"unsupported webhook method %q, supported: %s", config.Method, strings.Join(supportedMethods, ", "),
		), nil
	}

	timeout := callTimeout(config.TimeoutSeconds)

	callCtx, cancel := context.WithTimeoutCause(ctx, timeout, ErrWebhookTimeout)
	defer cancel()

	body, err := h.requestBody(config, method, actionCtx)
	if err != nil {
		return actions.Fail(ctx, logger, "failed to build webhook body", err)
	}

	req, err := http.NewRequestWithContext(callCtx, method, target.String(), body)
	if err != nil {
		return models.ValidationFailure("invalid webhook request: %v", err), nil
	}

	applyHeaders(req, config, actionCtx, body != nil)

	sentAt := h.now().UTC()

	logger.DebugContext(ctx, "Calling webhook", "method", method, "url", target.Redacted())

	resp, err := h.client.Do(req)
	if err != nil {
		return h.requestFailure(ctx, callCtx, logger, timeout, err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.WarnContext(ctx, "Failed to close webhook response body", "error", err)
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseReadBytes))
	if err != nil {
		return h.requestFailure(ctx, callCtx, logger, timeout, err)
	}

	isSuccess := resp.StatusCode >= 200 && resp.StatusCode < 300
	responseBody := truncate(string(raw), maxResponseBodyLength)

	if !isSuccess && (config.FailOnNonSuccessStatus == nil || *config.FailOnNonSuccessStatus) {
		logger.WarnContext(ctx, "Webhook returned non-success status", "status", resp.StatusCode)

		return models.Failed(models.FailureInfrastructure,
			fmt.Sprintf("webhook returned status %d: %s", resp.StatusCode, responseBody)), nil
	}

	output := map[string]any{
		"url":          target.String(),
		"method":       method,
		"statusCode":   resp.StatusCode,
		"responseBody": responseBody,
		"sentAt":       sentAt,
		"isSuccess":    isSuccess,
	}

	if responseData, ok := parseStructured(responseBody); ok {
		output["responseData"] = responseData
	}

	logger.InfoContext(ctx, "Webhook called", "method", method, "status", resp.StatusCode)

	return models.Succeeded(output), nil
}

// requestFailure separates the step's own timeout from the caller giving up.
func (h *Handler) requestFailure(
	ctx, callCtx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	err error,
) (models.ActionResult, error) {
	if ctx.Err() != nil {
		return models.ActionResult{}, ctx.Err()
	}

	if errors.Is(context.Cause(callCtx), ErrWebhookTimeout) {
		logger.WarnContext(ctx, "Webhook timed out", "timeout", timeout)

		return models.Failed(models.FailureTimeout, fmt.Sprintf("webhook timed out after %s", timeout)), nil
	}

	return actions.Fail(ctx, logger, "webhook request failed", err)
}

func (h *Handler) requestBody(
	config models.WebhookConfig,
	method string,
	actionCtx *models.WorkflowActionContext,
) (io.Reader, error) {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return nil, nil
	}

	if config.BodyTemplate != "" {
		return strings.NewReader(template.Interpolate(config.BodyTemplate, actionCtx)), nil
	}

	payload := map[string]any{
		"workflowId":  actionCtx.WorkflowID,
		"executionId": actionCtx.ExecutionID,
		"entityType":  actionCtx.EntityType,
		"entityId":    actionCtx.EntityID,
		"actionType":  actionCtx.ActionType,
		"timestamp":   h.now().UTC(),
	}

	if config.IncludeTriggerData == nil || *config.IncludeTriggerData {
		payload["triggerData"] = actionCtx.TriggerData.Map()
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode default payload: %w", err)
	}

	return strings.NewReader(string(encoded)), nil
}

func applyHeaders(req *http.Request, config models.WebhookConfig, actionCtx *models.WorkflowActionContext, hasBody bool) {
	req.Header.Set("User-Agent", UserAgent)

	if hasBody {
		contentType := strings.TrimSpace(config.ContentType)
		if contentType == "" {
			contentType = DefaultContentType
		}

		req.Header.Set("Content-Type", contentType)
	}

	for name, value := range config.Headers {
		req.Header.Set(name, template.Interpolate(value, actionCtx))
	}

	switch strings.ToLower(strings.TrimSpace(config.AuthType)) {
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+template.Interpolate(config.AuthToken, actionCtx))
	case "basic":
		credentials := template.Interpolate(config.AuthUsername, actionCtx) + ":" +
			template.Interpolate(config.AuthPassword, actionCtx)
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(credentials)))
	case "apikey":
		header := strings.TrimSpace(config.APIKeyHeader)
		if header != "" {
			req.Header.Set(header, template.Interpolate(config.APIKeyValue, actionCtx))
		}
	}
}

func parseURL(raw string) (*url.URL, error) {
	target, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	if !target.IsAbs() || target.Host == "" {
		return nil, errors.New("url must be absolute")
	}

	switch strings.ToLower(target.Scheme) {
	case "http", "https":
		return target, nil
	default:
		return nil, fmt.Errorf("scheme %q is not supported", target.Scheme)
	}
}

func parseMethod(raw string) (string, bool) {
	method := strings.ToUpper(strings.TrimSpace(raw))
	if method == "" {
		return http.MethodPost, true
	}

	for _, supported := range supportedMethods {
		if method == supported {
			return method, true
		}
	}

	return "", false
}

// parseStructured decodes a JSON object or array body.
func parseStructured(body string) (any, bool) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return nil, false
	}

	var data any
	if err := json.Unmarshal([]byte(trimmed), &data); err != nil {
		return nil, false
	}

	return data, true
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
