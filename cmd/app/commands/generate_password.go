package commands

import (
	"fmt"
	"io"

	cryptoService "github.com/allisson/zkvault/internal/crypto/service"
)

// PasswordGenerator generates random passwords.
type PasswordGenerator interface {
	Generate(opts cryptoService.PasswordOptions) (string, error)
}

// RunGeneratePassword writes a random password matching opts to writer.
func RunGeneratePassword(generator PasswordGenerator, writer io.Writer, opts cryptoService.PasswordOptions) error {
	password, err := generator.Generate(opts)
	if err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}
	_, err = fmt.Fprintln(writer, password)
	return err
}
