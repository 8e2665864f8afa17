package main

import (
	"github.com/urfave/cli/v3"

	"github.com/allisson/zkvault/internal/app"
	"github.com/allisson/zkvault/internal/config"
)

func getCommands() []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands()...)
	cmds = append(cmds, getKeyCommands()...)
	cmds = append(cmds, getVaultCommands()...)
	return cmds
}

// newContainer loads and validates the configuration and builds the container.
func newContainer() (*app.Container, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return app.NewContainer(cfg), nil
}

// paramsFlag is the key params file flag shared by the commands that unlock.
func paramsFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "params",
		Aliases:  []string{"p"},
		Required: required,
		Usage:    "Key params file written by enroll",
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}
