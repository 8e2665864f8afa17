package commands

import (
	"fmt"
	"io"
	"log/slog"
)

// RunEnroll creates key params for passphrase and writes them to writer as JSON.
// The params hold no secret but must be kept: without them the root key cannot
// be derived again and every sealed object is lost.
func RunEnroll(session Session, logger *slog.Logger, writer io.Writer, passphrase string) error {
	logger.Info("enrolling master passphrase")

	params, err := session.Enroll(passphrase)
	if err != nil {
		return fmt.Errorf("failed to enroll: %w", err)
	}
	defer session.Lock()

	logger.Info("enrollment completed",
		slog.Int("iterations", params.Iterations),
		slog.Uint64("argon_memory_kib", uint64(params.ArgonMemory)),
	)

	return writeJSON(writer, params)
}
