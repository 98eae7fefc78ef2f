// Package registry maps action types to their handlers and dispatches
// workflow steps to them.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dukex/crmflow/pkg/actions"
	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/otelhelper"
	"github.com/dukex/crmflow/pkg/protocol"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrUnhandledActionType is returned for action type names outside the known set.
	ErrUnhandledActionType = errors.New("unhandled action type")
	// ErrHandlerNotRegistered is returned when a known action type has no handler.
	ErrHandlerNotRegistered = errors.New("no handler registered for action type")
	// ErrDuplicateHandler is returned by Register when the type already has a handler.
	ErrDuplicateHandler = errors.New("handler already registered for action type")
)

// Registry is the action dispatcher. It is safe for concurrent use; handlers
// are normally registered once at startup.
type Registry struct {
	logger *slog.Logger
	tracer trace.Tracer

	mu       sync.RWMutex
	handlers map[models.ActionType]protocol.ActionHandler
}

func NewRegistry(logger *slog.Logger, tracer trace.Tracer) *Registry {
	if tracer == nil {
		tracer = otelhelper.NoopTracer()
	}

	return &Registry{
		logger:   logger.With("module", "registry"),
		tracer:   tracer,
		handlers: make(map[models.ActionType]protocol.ActionHandler),
	}
}

func (r *Registry) Register(handler protocol.ActionHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	actionType := handler.Type()
	if _, exists := r.handlers[actionType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, actionType)
	}

	r.handlers[actionType] = handler
	r.logger.Debug("Registered action handler", "action_type", actionType, "name", handler.Name())

	return nil
}

// Handler looks up the handler for an action type name, ignoring case and
// accepting aliases such as WebhookCall.
//
// nolint:ireturn
func (r *Registry) Handler(actionType string) (protocol.ActionHandler, error) {
	parsed, err := models.ParseActionType(actionType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnhandledActionType, actionType)
	}

	r.mu.RLock()
	handler, ok := r.handlers[parsed]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotRegistered, parsed)
	}

	return handler, nil
}

// CanHandle reports whether Dispatch would find a handler for actionType.
func (r *Registry) CanHandle(actionType string) bool {
	_, err := r.Handler(actionType)

	return err == nil
}

// Handlers returns the registered handlers ordered by action type.
func (r *Registry) Handlers() []protocol.ActionHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := make([]protocol.ActionHandler, 0, len(r.handlers))
	for _, actionType := range models.ActionTypes() {
		if handler, ok := r.handlers[actionType]; ok {
			handlers = append(handlers, handler)
		}
	}

	return handlers
}

// Validate checks that every action type has a handler.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []error

	for _, actionType := range models.ActionTypes() {
		if _, ok := r.handlers[actionType]; !ok {
			missing = append(missing, fmt.Errorf("%w: %s", ErrHandlerNotRegistered, actionType))
		}
	}

	return errors.Join(missing...)
}

// Types lists the action types with a registered handler.
func (r *Registry) Types() []models.ActionType {
	handlers := r.Handlers()

	types := make([]models.ActionType, 0, len(handlers))
	for _, handler := range handlers {
		types = append(types, handler.Type())
	}

	return types
}

// ValidateConfiguration checks a raw step configuration against the JSON
// schema of the handler for actionType. Execution never depends on it.
func (r *Registry) ValidateConfiguration(actionType, configuration string) error {
	handler, err := r.Handler(actionType)
	if err != nil {
		return err
	}

	return actions.ValidateConfiguration(handler.Schema(), configuration)
}

// Execute dispatches actionCtx using its own action type.
func (r *Registry) Execute(ctx context.Context, actionCtx *models.WorkflowActionContext) (models.ActionResult, error) {
	return r.Dispatch(ctx, actionCtx.ActionType, actionCtx)
}

// Dispatch runs the handler for actionType. Lookup errors and caller
// cancellation are returned as errors; every other problem is a Failure
// result. A panicking handler yields an infrastructure Failure.
func (r *Registry) Dispatch(
	ctx context.Context,
	actionType string,
	actionCtx *models.WorkflowActionContext,
) (result models.ActionResult, err error) {
	handler, err := r.Handler(actionType)
	if err != nil {
		return models.ActionResult{}, err
	}

	ctx, span := otelhelper.StartSpan(ctx, r.tracer, "workflow.step.dispatch",
		otelhelper.StepAttributes(actionCtx, handler.Type())...)
	defer span.End()

	logger := actions.StepLogger(r.logger, actionCtx)

	defer func() {
		if recovered := recover(); recovered != nil {
			logger.ErrorContext(ctx, "Action handler panicked", "panic", recovered)

			result = models.Failed(models.FailureInfrastructure, fmt.Sprintf("action handler panicked: %v", recovered))
			err = nil

			otelhelper.SetError(span, fmt.Errorf("panic: %v", recovered), models.FailureInfrastructure)
		}
	}()

	result, err = handler.Execute(ctx, actionCtx)
	if err != nil {
		otelhelper.SetError(span, err, "")

		return models.ActionResult{}, err
	}

	if result.IsFailure() {
		otelhelper.SetError(span, errors.New(result.ErrorMessage), result.Kind)
	}

	return result, nil
}
