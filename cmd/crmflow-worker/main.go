package main

import (
	"context"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "crmflow-worker",
		Usage:                 "Execute CRM workflow steps",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			NewRunCommand(),
			NewExecuteCommand(),
			NewValidateCommand(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL (memory://, file:///path or postgres://...)",
				Value:   "memory://",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "email-transport",
				Usage:   "Email transport (log or redis://host:port/db?queue=name)",
				Value:   "log",
				Sources: cli.EnvVars("EMAIL_TRANSPORT"),
			},
			&cli.IntFlag{
				Name:    "webhook-max-idle-conns",
				Usage:   "Idle connections kept per host by the webhook HTTP client",
				Value:   100,
				Sources: cli.EnvVars("WEBHOOK_MAX_IDLE_CONNS"),
			},
			&cli.DurationFlag{
				Name:    "webhook-idle-timeout",
				Usage:   "How long idle webhook connections are kept",
				Value:   90 * time.Second,
				Sources: cli.EnvVars("WEBHOOK_IDLE_TIMEOUT"),
			},
			&cli.StringFlag{
				Name:    "default-tenant",
				Usage:   "Tenant ID used when a step does not carry one",
				Sources: cli.EnvVars("DEFAULT_TENANT_ID"),
			},
			&cli.BoolFlag{
				Name:    "otel-enabled",
				Usage:   "Export traces over OTLP/HTTP",
				Sources: cli.EnvVars("OTEL_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				Value:   "text",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
		},
	}
}
