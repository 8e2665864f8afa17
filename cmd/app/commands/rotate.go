package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
	"github.com/allisson/zkvault/internal/metrics"
	rotationDomain "github.com/allisson/zkvault/internal/rotation/domain"
	rotationUsecase "github.com/allisson/zkvault/internal/rotation/usecase"
	vaultDomain "github.com/allisson/zkvault/internal/vault/domain"
	vaultUsecase "github.com/allisson/zkvault/internal/vault/usecase"
)

// RotationScheduler is the part of the rotation scheduler used to rebuild the
// schedule from sealed files.
type RotationScheduler interface {
	ScheduleRotationAt(scope, keyID string, sealedAt time.Time)
	Entries() []rotationDomain.Entry
}

// RotationRunner runs one rotation pass.
type RotationRunner interface {
	Run(ctx context.Context, handler rotationUsecase.Handler) (rotationDomain.RunResult, error)
}

type rotationReport struct {
	Result   rotationDomain.RunResult `json:"result"`
	Schedule []rotationDomain.Entry   `json:"schedule"`
}

type sealedPasswordFile struct {
	path   string
	sealed *vaultDomain.SealedPassword
}

// RunRotatePasswords unlocks the session and reseals, in place, every sealed
// password in paths whose key is due.
//
// Nothing about the schedule outlives the process: each file's due date is
// recomputed from the sealing time of its envelope, which is authenticated when
// the file is opened.
func RunRotatePasswords(
	ctx context.Context,
	session Session,
	useCase vaultUsecase.VaultUseCase,
	scheduler RotationScheduler,
	runner RotationRunner,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
	writer io.Writer,
	passphrase string,
	paramsPath string,
	paths []string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	files := make(map[string]sealedPasswordFile, len(paths))
	for _, path := range paths {
		var sealed vaultDomain.SealedPassword
		if err := readJSONFile(path, &sealed); err != nil {
			return fmt.Errorf("failed to read sealed password %s: %w", path, err)
		}
		if err := sealed.Validate(); err != nil {
			return fmt.Errorf("invalid sealed password %s: %w", path, err)
		}
		scope, err := cryptoDomain.PasswordContext(sealed.VaultID, sealed.PasswordID)
		if err != nil {
			return err
		}
		if other, ok := files[scope]; ok {
			return fmt.Errorf("%s and %s hold the same password", other.path, path)
		}
		files[scope] = sealedPasswordFile{path: path, sealed: &sealed}
	}

	if err := unlock(session, passphrase, paramsPath); err != nil {
		return err
	}
	defer session.Lock()

	for scope, file := range files {
		scheduler.ScheduleRotationAt(scope, file.sealed.KeyID, file.sealed.CreatedAt())
	}

	handler := func(ctx context.Context, entry rotationDomain.Entry) error {
		file, ok := files[entry.Scope]
		if !ok {
			return fmt.Errorf("no sealed file for %s", entry.Scope)
		}
		resealed, err := useCase.ReencryptPassword(ctx, file.sealed)
		if err != nil {
			return err
		}
		if err := writeJSONFile(file.path, resealed); err != nil {
			return err
		}
		logger.Info("password rotated",
			slog.String("password_id", resealed.PasswordID),
			slog.Uint64("key_version", uint64(resealed.KeyVersion)),
		)
		return nil
	}

	result, err := runner.Run(ctx, rotationUsecase.NewHandlerWithMetrics(handler, businessMetrics))
	if err != nil {
		return fmt.Errorf("failed to rotate passwords: %w", err)
	}

	report := rotationReport{Result: result, Schedule: scheduler.Entries()}
	if format == "json" {
		if err := writeJSON(writer, report); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Rotated: %d\n", result.Rotated)
		_, _ = fmt.Fprintf(writer, "Failed: %d\n", result.Failed)
		_, _ = fmt.Fprintf(writer, "Skipped: %d\n", result.Skipped)
		for _, entry := range report.Schedule {
			_, _ = fmt.Fprintf(writer, "%s due %s\n", files[entry.Scope].path, entry.DueAt.UTC().Format(time.RFC3339))
		}
	}

	if result.Failed > 0 {
		return fmt.Errorf("failed to rotate %d of %d passwords", result.Failed, len(files))
	}
	return nil
}
