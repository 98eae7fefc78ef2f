package otelhelper_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/otelhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     models.FailureKind
		wantKind bool
	}{
		{name: "step failure", kind: models.FailureTimeout, wantKind: true},
		{name: "cancellation", kind: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			recorder := tracetest.NewSpanRecorder()
			tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")

			actionCtx := models.NewWorkflowActionContext(4, 5, 6, "CallWebhook", "{}", "42", "Deal", nil)

			_, span := otelhelper.StartSpan(context.Background(), tracer, "step",
				otelhelper.StepAttributes(actionCtx, models.ActionTypeWebhookCall)...)
			otelhelper.SetError(span, errors.New("boom"), testCase.kind)
			span.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)

			ended := spans[0]
			assert.Equal(t, codes.Error, ended.Status().Code)
			assert.Equal(t, "boom", ended.Status().Description)
			assert.Contains(t, ended.Attributes(), attribute.Int64(otelhelper.StepIDKey, 6))
			assert.Contains(t, ended.Attributes(), attribute.String(otelhelper.ActionTypeKey, "CallWebhook"))

			kindAttr := attribute.String(otelhelper.FailureKindKey, string(testCase.kind))

			require.Len(t, ended.Events(), 1)

			if testCase.wantKind {
				assert.Contains(t, ended.Attributes(), kindAttr)
				assert.Contains(t, ended.Events()[0].Attributes, kindAttr)
			} else {
				assert.NotContains(t, ended.Attributes(), kindAttr)
			}
		})
	}
}
