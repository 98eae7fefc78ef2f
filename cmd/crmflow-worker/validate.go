package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukex/crmflow/pkg/config"
	cli "github.com/urfave/cli/v3"
)

var errInvalidSteps = errors.New("invalid step configurations")

func NewValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate a YAML or JSON steps file against the action schemas",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, command *cli.Command) error {
			path := command.Args().First()
			if path == "" {
				return errors.New("missing step configuration file")
			}

			steps, err := config.LoadSteps(path)
			if err != nil {
				return err
			}

			rt, err := newRuntime(ctx, command, serviceName)
			if err != nil {
				return err
			}
			defer rt.Close(context.WithoutCancel(ctx))

			out := command.Root().Writer

			fmt.Fprintln(out, "Step Validation Results:")
			fmt.Fprintln(out, "========================")

			invalid := 0

			for _, step := range steps {
				name := step.Name

				if err := rt.registry.ValidateConfiguration(step.ActionType, step.ActionConfiguration); err != nil {
					fmt.Fprintf(out, "  ❌ INVALID %s (%s): %v\n", name, step.ActionType, err)

					invalid++

					continue
				}

				fmt.Fprintf(out, "  ✅ VALID %s (%s)\n", name, step.ActionType)
			}

			fmt.Fprintf(out, "\nSummary: %d valid, %d invalid\n", len(steps)-invalid, invalid)

			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidSteps, invalid, len(steps))
			}

			return nil
		},
	}
}
