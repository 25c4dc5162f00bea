package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/codecollab/server/cmd/app/commands"
	"github.com/codecollab/server/internal/app"
	"github.com/codecollab/server/internal/config"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Create a user account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Account email address",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Account password (omit to read it from stdin)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					cmd.String("email"),
					cmd.String("password"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "import-users",
			Usage: "Import accounts from a JSON-lines export of the legacy store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "file",
					Aliases: []string{"i"},
					Usage:   "Export file, one {\"email\", \"password\"} object per line (default: stdin)",
				},
				&cli.BoolFlag{
					Name:  "fail-fast",
					Value: false,
					Usage: "Stop at the first line that cannot be imported",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				io := commands.DefaultIO()
				if path := cmd.String("file"); path != "" {
					file, err := os.Open(path)
					if err != nil {
						return fmt.Errorf("failed to open import file: %w", err)
					}
					defer func() { _ = file.Close() }()
					io.Reader = file
				}

				return commands.RunImportUsers(
					ctx,
					userUseCase,
					container.Logger(),
					cmd.String("format"),
					cmd.Bool("fail-fast"),
					io,
				)
			},
		},
	}
}
