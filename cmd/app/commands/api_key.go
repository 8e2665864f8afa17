package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	vaultUsecase "github.com/allisson/zkvault/internal/vault/usecase"
)

// RunGenerateAPIKey unlocks the session and generates a new API key.
// The plaintext key is printed once and cannot be recovered from the metadata.
func RunGenerateAPIKey(
	ctx context.Context,
	session Session,
	useCase vaultUsecase.VaultUseCase,
	logger *slog.Logger,
	writer io.Writer,
	passphrase string,
	paramsPath string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if err := unlock(session, passphrase, paramsPath); err != nil {
		return err
	}
	defer session.Lock()

	generated, err := useCase.GenerateAPIKey(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate api key: %w", err)
	}

	logger.Info("api key generated", slog.String("api_key_id", generated.Metadata.APIKeyID))

	if format == "json" {
		return writeJSON(writer, generated)
	}

	_, _ = fmt.Fprintf(writer, "API Key ID: %s\n", generated.Metadata.APIKeyID)
	_, _ = fmt.Fprintf(writer, "API Key: %s\n", generated.APIKey)
	_, _ = fmt.Fprintf(writer, "Hashed Key: %s\n", generated.HashedKey)
	_, _ = fmt.Fprintln(writer, "\nStore the API key now, it will not be shown again.")
	return nil
}
