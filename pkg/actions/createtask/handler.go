// Package createtask provides the CreateTask action handler.
package createtask

import (
	"context"
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

var dueDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Handler creates a task for the owner of the triggering record.
type Handler struct {
	store  persistence.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewHandler(store persistence.Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("module", "create_task_action"),
		now:    time.Now,
	}
}

// WithClock replaces the clock used for due dates and timestamps.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now

	return h
}

func (h *Handler) Type() models.ActionType { return models.ActionTypeCreateTask }

func (h *Handler) Name() string { return "Create Task" }

func (h *Handler) Description() string {
	return "Creates a follow-up task owned by a user resolved from the configuration or the trigger data."
}

func (h *Handler) Execute(ctx context.Context, actionCtx *models.WorkflowActionContext) (models.ActionResult, error) {
	logger := actions.StepLogger(h.logger, actionCtx)

	config, usedDefaults := actions.Decode[models.TaskConfig](logger, actionCtx.ActionConfiguration)
	config.Subject = strings.TrimSpace(template.Interpolate(config.Subject, actionCtx))

	if err := actions.RequireFields(config); err != nil {
		return actions.MissingFieldFailure(err, usedDefaults), nil
	}

	ownerID, ok := actions.ResolveID(config.OwnerID, actionCtx, actions.OwnerCandidateKeys(), nil)
	if !ok {
		return models.ValidationFailure(
			"owner could not be resolved from ownerId or trigger data keys %s",
			strings.Join(actions.OwnerCandidateKeys(), ", "),
		), nil
	}

	now := h.now()
	dueDate := h.dueDate(logger, config, actionCtx, now)

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

	tenantID, ok := actions.ResolveID(config.TenantID, actionCtx, actions.TenantCandidateKeys(), ambient)
	if !ok {
		return models.ValidationFailure("tenant could not be resolved from tenantId, trigger data TenantId or the current unit of work"), nil
	}

	task, err := crm.NewTask(
		tenantID,
		ownerID,
		config.Subject,
		template.Interpolate(config.Description, actionCtx),
		template.Interpolate(config.Priority, actionCtx),
		dueDate,
		now,
	)
	if err != nil {
		if errors.Is(err, crm.ErrInvalidInput) {
			return models.ValidationFailure("failed to create task: %v", err), nil
		}

		return actions.Fail(ctx, logger, "failed to create task", err)
	}

	if related, ok := crm.RelatedEntityTypeFor(actionCtx.EntityType); ok && actionCtx.EntityID != "" {
		task.RelateTo(related, actionCtx.EntityID)
	}

	task.AssignUsers(actions.ParseIDs(config.AssigneeIDs, actionCtx)...)

	if err := uow.Tasks().Add(ctx, task); err != nil {
		return actions.Fail(ctx, logger, "failed to add task", err)
	}

	if err := uow.SaveChanges(ctx); err != nil {
		return actions.Fail(ctx, logger, "failed to save task", err)
	}

	committed = true

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "owner_id", ownerID)

	output := map[string]any{
		"taskId":    task.ID.String(),
		"subject":   task.Subject,
		"ownerId":   ownerID.String(),
		"priority":  string(task.Priority),
		"createdAt": task.CreatedAt,
	}

	if task.DueDate != nil {
		output["dueDate"] = *task.DueDate
	}

	return models.Succeeded(output), nil
}

func (h *Handler) dueDate(
	logger *slog.Logger,
	config models.TaskConfig,
	actionCtx *models.WorkflowActionContext,
	now time.Time,
) *time.Time {
	if config.DueDateDaysFromNow != nil {
		due := now.AddDate(0, 0, *config.DueDateDaysFromNow).UTC()

		return &due
	}

	raw := strings.TrimSpace(template.Interpolate(config.DueDate, actionCtx))
	if raw == "" {
		return nil
	}

	for _, layout := range dueDateLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			due := parsed.UTC()

			return &due
		}
	}

	logger.Warn("Ignoring unparseable due date", "due_date", raw)

	return nil
}
