package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/codecollab/server/cmd/app/commands"
	"github.com/codecollab/server/internal/app"
	"github.com/codecollab/server/internal/config"
)

func getSessionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "clean-revocations",
			Usage: "Delete revocation records of tokens that have already expired (database store only)",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many records would be deleted without deleting",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				cleaner, err := container.RevocationCleaner()
				if err != nil {
					return err
				}

				return commands.RunCleanRevocations(
					ctx,
					cleaner,
					container.Logger(),
					commands.DefaultIO(),
					time.Now().UTC(),
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
