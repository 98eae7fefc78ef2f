package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dukex/crmflow/pkg/eventbus"
	"github.com/dukex/crmflow/pkg/events"
	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/dukex/crmflow/pkg/registry"
	"github.com/google/uuid"
)

// Dispatcher executes one workflow step.
type Dispatcher interface {
	Execute(ctx context.Context, actionCtx *models.WorkflowActionContext) (models.ActionResult, error)
}

// Worker consumes step-triggered events, runs them and publishes the outcome.
type Worker struct {
	id            string
	logger        *slog.Logger
	dispatcher    Dispatcher
	eventBus      eventbus.EventBus
	defaultTenant uuid.UUID
}

func NewWorker(
	id string,
	dispatcher Dispatcher,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	defaultTenant uuid.UUID,
) *Worker {
	return &Worker{
		id:            id,
		logger:        logger.With("module", "crmflow-worker", "worker_id", id),
		dispatcher:    dispatcher,
		eventBus:      eventBus,
		defaultTenant: defaultTenant,
	}
}

// Start subscribes to step events and blocks until ctx is done.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Starting worker")

	if err := w.eventBus.Handle(events.StepTriggeredEvent, w.HandleStepTriggered); err != nil {
		return err
	}

	if err := w.eventBus.Subscribe(ctx); err != nil {
		w.logger.ErrorContext(ctx, "Failed to subscribe to event bus", "error", err)

		return err
	}

	w.logger.InfoContext(ctx, "Worker started successfully")

	<-ctx.Done()

	w.logger.InfoContext(ctx, "Shutting down worker...")

	return nil
}

// HandleStepTriggered executes one step. The returned error nacks the
// message; it is reserved for cancellation and publish failures.
func (w *Worker) HandleStepTriggered(ctx context.Context, event any) error {
	triggered, ok := event.(*events.StepTriggered)
	if !ok {
		w.logger.ErrorContext(ctx, "Invalid event type for StepTriggered", "event", fmt.Sprintf("%T", event))

		return nil
	}

	logger := w.logger.With(
		"event_id", triggered.ID,
		"workflow_id", triggered.WorkflowID,
		"execution_id", triggered.ExecutionID,
		"step_id", triggered.StepID,
		"action_type", triggered.ActionType,
	)
	logger.InfoContext(ctx, "Processing step triggered event")

	if tenant, ok := triggered.Tenant(); ok {
		ctx = persistence.ContextWithTenant(ctx, tenant)
	} else if w.defaultTenant != uuid.Nil {
		ctx = persistence.ContextWithTenant(ctx, w.defaultTenant)
	}

	started := time.Now()

	result, err := w.dispatcher.Execute(ctx, triggered.ActionContext())

	switch {
	case errors.Is(err, registry.ErrUnhandledActionType), errors.Is(err, registry.ErrHandlerNotRegistered):
		result = models.Failed(models.FailureValidation, err.Error())
	case err != nil:
		logger.WarnContext(ctx, "Step interrupted", "error", err)

		return err
	}

	finished := events.StepFinished(*triggered, result, time.Since(started), w.id)

	if err := w.eventBus.Publish(ctx, strconv.FormatInt(triggered.ExecutionID, 10), finished); err != nil {
		logger.ErrorContext(ctx, "Failed to publish step result", "error", err)

		return err
	}

	if result.IsFailure() {
		logger.InfoContext(ctx, "Step failed", "failure_kind", result.Kind, "error", result.ErrorMessage)
	} else {
		logger.InfoContext(ctx, "Step completed")
	}

	return nil
}
