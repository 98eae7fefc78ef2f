package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukex/crmflow/pkg/cmd"
	"github.com/dukex/crmflow/pkg/log"
	"github.com/dukex/crmflow/pkg/otelhelper"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/dukex/crmflow/pkg/registry"
	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "crmflow-worker"

// runtime holds what every subcommand builds from the global flags.
type runtime struct {
	logger        *slog.Logger
	store         persistence.Store
	registry      *registry.Registry
	defaultTenant uuid.UUID

	closers []func(ctx context.Context) error
}

func newRuntime(ctx context.Context, command *cli.Command, module string) (*runtime, error) {
	log.Setup(command.String("log-level"), command.String("log-format"))

	rt := &runtime{logger: log.WithModule(module)}

	defaultTenant, err := parseTenant(command.String("default-tenant"))
	if err != nil {
		return nil, err
	}

	rt.defaultTenant = defaultTenant

	tracer := otelhelper.NoopTracer()

	if command.Bool("otel-enabled") {
		var shutdown otelhelper.ShutdownFunc

		tracer, shutdown, err = otelhelper.NewTracer(ctx, serviceName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}

		rt.closers = append(rt.closers, shutdown)
	}

	if err := rt.wire(ctx, command, tracer); err != nil {
		rt.Close(ctx)

		return nil, err
	}

	return rt, nil
}

func (rt *runtime) wire(ctx context.Context, command *cli.Command, tracer trace.Tracer) error {
	store, err := cmd.NewPersistence(ctx, rt.logger, command.String("database-url"))
	if err != nil {
		return err
	}

	rt.store = store
	rt.closers = append(rt.closers, store.Close)

	transport, closeTransport, err := cmd.NewEmailTransport(ctx, command.String("email-transport"), rt.logger)
	if err != nil {
		return err
	}

	rt.closers = append(rt.closers, func(context.Context) error { return closeTransport() })

	httpClient := cmd.NewHTTPClient(cmd.HTTPClientConfig{
		MaxIdleConns:    command.Int("webhook-max-idle-conns"),
		IdleConnTimeout: command.Duration("webhook-idle-timeout"),
		Tracing:         command.Bool("otel-enabled"),
	})

	rt.registry, err = cmd.NewRegistry(rt.logger, tracer, cmd.Collaborators{
		Store:      store,
		Email:      transport,
		HTTPClient: httpClient,
	})

	return err
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close(ctx context.Context) {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			rt.logger.ErrorContext(ctx, "Failed to release resource", "error", err)
		}
	}
}

var errInvalidTenant = errors.New("invalid tenant id")

func parseTenant(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w %q: %w", errInvalidTenant, raw, err)
	}

	return id, nil
}
