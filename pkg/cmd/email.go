package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/crmflow/pkg/email"
	"github.com/dukex/crmflow/pkg/email/redisqueue"
)

// NewEmailTransport selects the transport from spec: "log" (or empty) logs
// messages, a redis:// URL queues them. The returned close function is never nil.
//
// nolint:ireturn
func NewEmailTransport(ctx context.Context, spec string, logger *slog.Logger) (email.Transport, func() error, error) {
	switch parseProvider(spec) {
	case "", "log":
		return email.NewLogTransport(logger), func() error { return nil }, nil
	case "redis", "rediss":
		transport, err := redisqueue.NewFromURL(ctx, spec, logger)
		if err != nil {
			return nil, nil, err
		}

		return transport, transport.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: email transport %q", ErrUnsupportedProvider, spec)
	}
}
