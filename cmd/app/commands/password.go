package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	vaultDomain "github.com/allisson/zkvault/internal/vault/domain"
	vaultUsecase "github.com/allisson/zkvault/internal/vault/usecase"
)

// RunSealPassword unlocks the session and writes record, sealed under a fresh
// password id in vaultID, to writer as JSON.
func RunSealPassword(
	ctx context.Context,
	session Session,
	useCase vaultUsecase.VaultUseCase,
	logger *slog.Logger,
	writer io.Writer,
	passphrase string,
	paramsPath string,
	vaultID string,
	record *vaultDomain.PasswordRecord,
) error {
	if err := unlock(session, passphrase, paramsPath); err != nil {
		return err
	}
	defer session.Lock()

	sealed, err := useCase.EncryptPassword(ctx, vaultID, record)
	if err != nil {
		return fmt.Errorf("failed to seal password: %w", err)
	}

	logger.Info("password sealed",
		slog.String("vault_id", sealed.VaultID),
		slog.String("password_id", sealed.PasswordID),
	)

	return writeJSON(writer, sealed)
}

// RunOpenPassword unlocks the session, opens the sealed password stored at
// sealedPath and writes the record to writer as JSON.
func RunOpenPassword(
	ctx context.Context,
	session Session,
	useCase vaultUsecase.VaultUseCase,
	logger *slog.Logger,
	writer io.Writer,
	passphrase string,
	paramsPath string,
	sealedPath string,
) error {
	var sealed vaultDomain.SealedPassword
	if err := readJSONFile(sealedPath, &sealed); err != nil {
		return fmt.Errorf("failed to read sealed password: %w", err)
	}

	if err := unlock(session, passphrase, paramsPath); err != nil {
		return err
	}
	defer session.Lock()

	record, err := useCase.DecryptPassword(ctx, &sealed)
	if err != nil {
		return fmt.Errorf("failed to open password: %w", err)
	}

	logger.Info("password opened", slog.String("password_id", sealed.PasswordID))

	return writeJSON(writer, record)
}

// RunResealPassword unlocks the session and writes the password stored at
// sealedPath, sealed again under a fresh nonce, to writer as JSON.
func RunResealPassword(
	ctx context.Context,
	session Session,
	useCase vaultUsecase.VaultUseCase,
	logger *slog.Logger,
	writer io.Writer,
	passphrase string,
	paramsPath string,
	sealedPath string,
) error {
	var sealed vaultDomain.SealedPassword
	if err := readJSONFile(sealedPath, &sealed); err != nil {
		return fmt.Errorf("failed to read sealed password: %w", err)
	}

	if err := unlock(session, passphrase, paramsPath); err != nil {
		return err
	}
	defer session.Lock()

	resealed, err := useCase.ReencryptPassword(ctx, &sealed)
	if err != nil {
		return fmt.Errorf("failed to reseal password: %w", err)
	}

	logger.Info("password resealed", slog.String("password_id", resealed.PasswordID))

	return writeJSON(writer, resealed)
}
