package commands

import (
	"context"
	"fmt"
	"io"

	vaultUsecase "github.com/allisson/zkvault/internal/vault/usecase"
)

type sessionStatus struct {
	Unlocked bool `json:"unlocked"`
}

// RunStatus writes the session state to writer. When paramsPath is set the
// session is unlocked first, which checks the passphrase.
//
// Each CLI invocation starts with an empty rotation schedule and a fresh unlock
// throttle, so neither is reported here. RunRotatePasswords rebuilds the
// schedule from the sealed files it is given.
func RunStatus(
	ctx context.Context,
	session Session,
	useCase vaultUsecase.VaultUseCase,
	writer io.Writer,
	passphrase string,
	paramsPath string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if paramsPath != "" {
		if err := unlock(session, passphrase, paramsPath); err != nil {
			return err
		}
		defer session.Lock()
	}

	status := sessionStatus{Unlocked: useCase.Status(ctx).Unlocked}

	if format == "json" {
		return writeJSON(writer, status)
	}

	state := "locked"
	if status.Unlocked {
		state = "unlocked"
	}
	_, _ = fmt.Fprintf(writer, "Session: %s\n", state)
	return nil
}
