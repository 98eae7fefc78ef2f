package otelhelper

import (
	"github.com/dukex/crmflow/pkg/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StepAttributes identify one step invocation on a span.
func StepAttributes(actionCtx *models.WorkflowActionContext, actionType models.ActionType) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64(WorkflowIDKey, actionCtx.WorkflowID),
		attribute.Int64(ExecutionIDKey, actionCtx.ExecutionID),
		attribute.Int64(StepIDKey, actionCtx.StepID),
		attribute.String(ActionTypeKey, actionType.String()),
		attribute.String(EntityTypeKey, actionCtx.EntityType),
	}
}

// SetError marks the span failed. An empty kind is used for errors that are
// not step failures, such as caller cancellation.
func SetError(span trace.Span, err error, kind models.FailureKind) {
	var attrs []attribute.KeyValue
	if kind != "" {
		attrs = append(attrs, attribute.String(FailureKindKey, string(kind)))
		span.SetAttributes(attrs...)
	}

	span.RecordError(err, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, err.Error())
}
