package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dukex/crmflow/pkg/models"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
)

// stepDocument is the input of the execute command: a step context plus an
// optional tenant.
type stepDocument struct {
	models.WorkflowActionContext

	TenantID string `json:"tenantId,omitempty"`
}

func NewExecuteCommand() *cli.Command {
	return &cli.Command{
		Name:      "execute",
		Aliases:   []string{"exec"},
		Usage:     "Execute one step described by a JSON document and print the result",
		ArgsUsage: "<file|->",
		Action: func(ctx context.Context, command *cli.Command) error {
			document, err := readStepDocument(command.Args().First(), command.Root().Reader)
			if err != nil {
				return err
			}

			rt, err := newRuntime(ctx, command, serviceName)
			if err != nil {
				return err
			}
			defer rt.Close(context.WithoutCancel(ctx))

			tenant, err := parseTenant(document.TenantID)
			if err != nil {
				return err
			}

			if tenant == uuid.Nil {
				tenant = rt.defaultTenant
			}

			if tenant != uuid.Nil {
				ctx = persistence.ContextWithTenant(ctx, tenant)
			}

			result, err := rt.registry.Execute(ctx, &document.WorkflowActionContext)
			if err != nil {
				return fmt.Errorf("step was not executed: %w", err)
			}

			encoder := json.NewEncoder(command.Root().Writer)
			encoder.SetIndent("", "  ")

			return encoder.Encode(result)
		},
	}
}

func readStepDocument(path string, stdin io.Reader) (*stepDocument, error) {
	var (
		raw []byte
		err error
	)

	switch path {
	case "":
		return nil, errors.New("missing step document path (use - for stdin)")
	case "-":
		raw, err = io.ReadAll(stdin)
	default:
		raw, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read step document: %w", err)
	}

	var document stepDocument
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("invalid step document: %w", err)
	}

	return &document, nil
}
