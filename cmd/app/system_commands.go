package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/zkvault/cmd/app/commands"
	cryptoService "github.com/allisson/zkvault/internal/crypto/service"
)

func getSystemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:        "status",
			Usage:       "Show whether the session unlocks with MASTER_PASSPHRASE",
			Description: "Rotation schedule and unlock throttling are per process and not shown.",
			Flags: []cli.Flag{
				paramsFlag(false),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				var passphrase string
				if cmd.String("params") != "" {
					var err error
					if passphrase, err = commands.Passphrase(); err != nil {
						return err
					}
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

				return commands.RunStatus(
					ctx,
					container.SessionManager(),
					vaultUseCase,
					commands.DefaultIO().Writer,
					passphrase,
					cmd.String("params"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "generate-password",
			Usage: "Generate a random password",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "length",
					Aliases: []string{"l"},
					Value:   16,
					Usage:   "Password length",
				},
				&cli.BoolFlag{
					Name:  "no-uppercase",
					Usage: "Exclude uppercase letters",
				},
				&cli.BoolFlag{
					Name:  "no-lowercase",
					Usage: "Exclude lowercase letters",
				},
				&cli.BoolFlag{
					Name:  "no-numbers",
					Usage: "Exclude digits",
				},
				&cli.BoolFlag{
					Name:  "no-symbols",
					Usage: "Exclude symbols",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				opts := cryptoService.PasswordOptions{
					Length:           int(cmd.Int("length")),
					IncludeUppercase: !cmd.Bool("no-uppercase"),
					IncludeLowercase: !cmd.Bool("no-lowercase"),
					IncludeNumbers:   !cmd.Bool("no-numbers"),
					IncludeSymbols:   !cmd.Bool("no-symbols"),
				}

				container, err := newContainer()
				if err != nil {
					return err
				}
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunGeneratePassword(
					container.PasswordGenerator(),
					commands.DefaultIO().Writer,
					opts,
				)
			},
		},
	}
}
