// Package cmd provides the wiring shared by the command-line binaries.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/dukex/crmflow/pkg/persistence/file"
	"github.com/dukex/crmflow/pkg/persistence/memory"
	"github.com/dukex/crmflow/pkg/persistence/postgresql"
)

var ErrUnsupportedProvider = errors.New("unsupported provider")

var supportedPersistenceProviders = []string{"memory", "file", "postgres", "postgresql"}

// NewPersistence opens the store named by databaseURL's scheme.
//
// nolint:ireturn
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.Store, error) {
	switch provider := parseProvider(databaseURL); provider {
	case "memory":
		logger.WarnContext(ctx, "Using in-memory persistence, data is lost on exit")

		return memory.NewStore(logger), nil
	case "file":
		store, err := file.NewStore(databaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open file persistence: %w", err)
		}

		return store, nil
	case "postgres", "postgresql":
		store, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres persistence: %w", err)
		}

		return store, nil
	default:
		return nil, fmt.Errorf("%w: persistence %q (supported: %s)",
			ErrUnsupportedProvider, provider, strings.Join(supportedPersistenceProviders, ", "))
	}
}

func parseProvider(rawURL string) string {
	scheme, _, _ := strings.Cut(strings.TrimSpace(rawURL), "://")

	return strings.ToLower(scheme)
}
