package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/codecollab/server/cmd/app/commands"
	"github.com/codecollab/server/internal/app"
	"github.com/codecollab/server/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	serve := &cli.Command{
		Name:  "server",
		Usage: "Serve the API, and /metrics when METRICS_ENABLED is set",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return commands.RunServer(ctx, version)
		},
	}

	migrate := &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending schema migrations for DB_DRIVER",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "migrations",
				Usage: "Directory holding the postgresql/ and mysql/ migration sets",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			container := app.NewContainer(cfg)
			defer func() { _ = container.Shutdown(ctx) }()

			return commands.RunMigrations(
				container.Logger(),
				cmd.String("dir"),
				cfg.DBDriver,
				cfg.DBConnectionString,
			)
		},
	}

	return []*cli.Command{serve, migrate}
}
