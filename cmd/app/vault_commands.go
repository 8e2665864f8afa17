package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/zkvault/cmd/app/commands"
	vaultDomain "github.com/allisson/zkvault/internal/vault/domain"
)

func getVaultCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "seal-password",
			Usage: "Seal a password entry and print it as JSON",
			Flags: []cli.Flag{
				paramsFlag(true),
				&cli.StringFlag{
					Name:     "vault-id",
					Required: true,
					Usage:    "Vault the password belongs to",
				},
				&cli.StringFlag{
					Name:     "title",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Entry title",
				},
				&cli.StringFlag{
					Name:    "username",
					Aliases: []string{"u"},
					Usage:   "Entry username",
				},
				&cli.StringFlag{
					Name:     "password",
					Required: true,
					Usage:    "Entry password",
				},
				&cli.StringFlag{
					Name:  "url",
					Usage: "Entry URL",
				},
				&cli.StringFlag{
					Name:  "notes",
					Usage: "Entry notes",
				},
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

				record := &vaultDomain.PasswordRecord{
					Title:    cmd.String("title"),
					Username: cmd.String("username"),
					Password: cmd.String("password"),
					URL:      cmd.String("url"),
					Notes:    cmd.String("notes"),
				}

				return commands.RunSealPassword(
					ctx,
					container.SessionManager(),
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					passphrase,
					cmd.String("params"),
					cmd.String("vault-id"),
					record,
				)
			},
		},
		{
			Name:  "open-password",
			Usage: "Open a sealed password entry and print the record as JSON",
			Flags: []cli.Flag{
				paramsFlag(true),
				&cli.StringFlag{
					Name:     "sealed",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "File holding the sealed password JSON",
				},
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

				return commands.RunOpenPassword(
					ctx,
					container.SessionManager(),
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					passphrase,
					cmd.String("params"),
					cmd.String("sealed"),
				)
			},
		},
		{
			Name:  "reseal-password",
			Usage: "Seal a password entry again under a fresh nonce",
			Flags: []cli.Flag{
				paramsFlag(true),
				&cli.StringFlag{
					Name:     "sealed",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "File holding the sealed password JSON",
				},
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

				return commands.RunResealPassword(
					ctx,
					container.SessionManager(),
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					passphrase,
					cmd.String("params"),
					cmd.String("sealed"),
				)
			},
		},
		{
			Name:        "rotate-passwords",
			Usage:       "Reseal, in place, the sealed password files whose key is due for rotation",
			Description: "Due dates come from each file's sealing time plus ROTATION_INTERVAL_DAYS.",
			Flags: []cli.Flag{
				paramsFlag(true),
				&cli.StringSliceFlag{
					Name:     "sealed",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "File holding a sealed password JSON (repeatable)",
				},
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

				businessMetrics, err := container.BusinessMetrics()
				if err != nil {
					return err
				}

				return commands.RunRotatePasswords(
					ctx,
					container.SessionManager(),
					vaultUseCase,
					container.RotationScheduler(),
					container.RotationRunner(),
					businessMetrics,
					container.Logger(),
					commands.DefaultIO().Writer,
					passphrase,
					cmd.String("params"),
					cmd.StringSlice("sealed"),
					cmd.String("format"),
				)
			},
		},
	}
}
