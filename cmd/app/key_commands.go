package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/zkvault/cmd/app/commands"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "enroll",
			Usage: "Create key params for the passphrase in MASTER_PASSPHRASE",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				passphrase, err := commands.Passphrase()
				if err != nil {
					return err
				}

				container, err := newContainer()
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunEnroll(
					container.SessionManager(),
					container.Logger(),
					commands.DefaultIO().Writer,
					passphrase,
				)
			},
		},
		{
			Name:  "generate-api-key",
			Usage: "Generate a new API key and its sealed metadata",
			Flags: []cli.Flag{
				paramsFlag(true),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				passphrase, err := commands.Passphrase()
				if err != nil {
					return err
				}

				container, err := newContainer()
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}

				return commands.RunGenerateAPIKey(
					ctx,
					container.SessionManager(),
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					passphrase,
					cmd.String("params"),
					cmd.String("format"),
				)
			},
		},
	}
}
