package email_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/dukex/crmflow/pkg/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogTransport_Send(t *testing.T) {
	t.Parallel()

	transport := email.NewLogTransport(slog.Default())

	result, err := transport.Send(context.Background(), email.Message{To: "a@example.com", Subject: "Hi", IsHTML: true})
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.NotNil(t, result.SentAt)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = transport.Send(ctx, email.Message{To: "a@example.com"})
	require.ErrorIs(t, err, context.Canceled)
}
