// Package updatefield provides the UpdateField action handler.
package updatefield

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dukex/crmflow/pkg/actions"
	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/dukex/crmflow/pkg/template"
	"github.com/google/uuid"
)

// Handler sets a single field on a lead or contact.
type Handler struct {
	store  persistence.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewHandler(store persistence.Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("module", "update_field_action"),
		now:    time.Now,
	}
}

// WithClock replaces the clock used for timestamps.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now

	return h
}

func (h *Handler) Type() models.ActionType { return models.ActionTypeUpdateField }

func (h *Handler) Name() string { return "Update Field" }

func (h *Handler) Description() string {
	return "Sets one field of the triggering lead or contact, using the entity's own validation."
}

func (h *Handler) Execute(ctx context.Context, actionCtx *models.WorkflowActionContext) (models.ActionResult, error) {
	logger := actions.StepLogger(h.logger, actionCtx)

	config, usedDefaults := actions.Decode[models.UpdateFieldConfig](logger, actionCtx.ActionConfiguration)
	config.FieldName = strings.TrimSpace(template.Interpolate(config.FieldName, actionCtx))

	if err := actions.RequireFields(config); err != nil {
		return actions.MissingFieldFailure(err, usedDefaults), nil
	}

	if config.FieldValue == nil {
		return models.ValidationFailure("fieldValue is required"), nil
	}

	entityType := firstNonEmpty(template.Interpolate(config.EntityType, actionCtx), actionCtx.EntityType)
	rawEntityID := firstNonEmpty(template.Interpolate(config.EntityID, actionCtx), actionCtx.EntityID)

	kind, ok := targets[strings.ToLower(entityType)]
	if !ok {
		return models.ValidationFailure(
			"unsupported entity type %q, supported: %s", entityType, strings.Join(supportedTargets(), ", "),
		), nil
	}

	field := strings.ToLower(config.FieldName)
	if !kind.Supports(field) {
		return models.ValidationFailure(
			"unsupported field %q for %s, supported: %s", config.FieldName, kind.Name(), strings.Join(kind.Fields(), ", "),
		), nil
	}

	entityID, err := uuid.Parse(rawEntityID)
	if err != nil {
		return models.ValidationFailure("entity id %q is not a valid identifier", rawEntityID), nil
	}

	value := template.Interpolate(stringify(config.FieldValue), actionCtx)

	uow, err := h.store.Begin(ctx)
	if err != nil {
		return actions.Fail(ctx, logger, "failed to open unit of work", err)
	}

	committed := false

	defer func() {
		if !committed {
			_ = uow.Rollback(ctx)
		}
	}()

	var ambient *uuid.UUID
	if tenantID, ok := uow.CurrentTenant(); ok {
		ambient = &tenantID
	}

	scope := tenantScope{id: entityID}
	scope.tenantID, scope.hasTenant = actions.ResolveID("", actionCtx, actions.TenantCandidateKeys(), ambient)

	now := h.now()

	newValue, err := kind.Update(ctx, uow, scope, field, value, now)
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		return models.ValidationFailure("%s %s not found", kind.Name(), entityID), nil
	case errors.Is(err, crm.ErrInvalidInput), errors.Is(err, crm.ErrInvalidTransition):
		return models.ValidationFailure("failed to update %s.%s: %v", kind.Name(), field, err), nil
	case err != nil:
		return actions.Fail(ctx, logger, fmt.Sprintf("failed to update %s", kind.Name()), err)
	}

	if err := uow.SaveChanges(ctx); err != nil {
		return actions.Fail(ctx, logger, fmt.Sprintf("failed to save %s", kind.Name()), err)
	}

	committed = true

	logger.InfoContext(ctx, "Field updated", "entity_type", kind.Name(), "entity_id", entityID, "field", field)

	return models.Succeeded(map[string]any{
		"entityType": kind.Name(),
		"entityId":   entityID.String(),
		"fieldName":  field,
		"newValue":   newValue,
		"updatedAt":  now.UTC(),
	}), nil
}

// stringify renders a decoded JSON value as the text a field setter parses.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(encoded)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}

	return ""
}
