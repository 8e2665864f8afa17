// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/awnumar/memguard"
	"github.com/urfave/cli/v3"
)

// Build-time version information (injected via ldflags during build).
var version = "v0.1.0"

func main() {
	// Wipe protected key memory on interrupt and on exit
	memguard.CatchInterrupt()
	defer memguard.Purge()

	cmd := &cli.Command{
		Name:     "zkvault",
		Usage:    "Zero-knowledge encryption engine for vault objects",
		Version:  version,
		Commands: getCommands(),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		memguard.SafeExit(1)
	}
}
