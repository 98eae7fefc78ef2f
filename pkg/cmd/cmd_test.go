package cmd_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/dukex/crmflow/pkg/cmd"
	"github.com/dukex/crmflow/pkg/email"
	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/persistence/file"
	"github.com/dukex/crmflow/pkg/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPersistence(t *testing.T) {
	t.Parallel()

	store, err := cmd.NewPersistence(context.Background(), slog.Default(), "memory://")
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)

	store, err = cmd.NewPersistence(context.Background(), slog.Default(), "file://"+t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &file.Store{}, store)

	_, err = cmd.NewPersistence(context.Background(), slog.Default(), "mongodb://localhost")
	require.ErrorIs(t, err, cmd.ErrUnsupportedProvider)
}

func TestNewEmailTransport(t *testing.T) {
	t.Parallel()

	transport, closeTransport, err := cmd.NewEmailTransport(context.Background(), "log", slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &email.LogTransport{}, transport)
	require.NoError(t, closeTransport())

	_, _, err = cmd.NewEmailTransport(context.Background(), "smtp://mail", slog.Default())
	require.ErrorIs(t, err, cmd.ErrUnsupportedProvider)
}

func TestNewEventBus(t *testing.T) {
	t.Parallel()

	bus, err := cmd.NewEventBus("gochannel", nil, "crmflow-test", slog.Default())
	require.NoError(t, err)
	require.NoError(t, bus.Close())

	_, err = cmd.NewEventBus("kafka", nil, "crmflow-test", slog.Default())
	require.Error(t, err)

	_, err = cmd.NewEventBus("rabbitmq", nil, "crmflow-test", slog.Default())
	require.ErrorIs(t, err, cmd.ErrUnsupportedProvider)
}

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	client := cmd.NewHTTPClient(cmd.HTTPClientConfig{MaxIdleConns: 50, IdleConnTimeout: time.Minute})

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 50, transport.MaxIdleConnsPerHost)
	assert.Equal(t, time.Minute, transport.IdleConnTimeout)
	assert.Zero(t, client.Timeout)

	traced := cmd.NewHTTPClient(cmd.HTTPClientConfig{Tracing: true})
	_, plain := traced.Transport.(*http.Transport)
	assert.False(t, plain)
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg, err := cmd.NewRegistry(slog.Default(), nil, cmd.Collaborators{
		Store:      memory.NewStore(slog.Default()),
		Email:      email.NewLogTransport(slog.Default()),
		HTTPClient: cmd.NewHTTPClient(cmd.HTTPClientConfig{}),
	})
	require.NoError(t, err)

	for _, actionType := range models.ActionTypes() {
		assert.True(t, reg.CanHandle(string(actionType)), actionType)
	}
}

func TestNewRegistry_MissingCollaborator(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(slog.Default())
	transport := email.NewLogTransport(slog.Default())
	client := cmd.NewHTTPClient(cmd.HTTPClientConfig{})

	tests := []struct {
		name string
		deps cmd.Collaborators
	}{
		{name: "store", deps: cmd.Collaborators{Email: transport, HTTPClient: client}},
		{name: "email transport", deps: cmd.Collaborators{Store: store, HTTPClient: client}},
		{name: "http client", deps: cmd.Collaborators{Store: store, Email: transport}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := cmd.NewRegistry(slog.Default(), nil, testCase.deps)
			require.ErrorIs(t, err, cmd.ErrMissingCollaborator)
			assert.Contains(t, err.Error(), testCase.name)
		})
	}
}
