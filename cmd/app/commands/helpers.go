// Package commands contains CLI command implementations for the application.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
)

// PassphraseEnv is the environment variable holding the master passphrase.
const PassphraseEnv = "MASTER_PASSPHRASE"

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// Session is the part of the session manager used by the commands.
type Session interface {
	Enroll(passphrase string) (cryptoDomain.KeyParams, error)
	Unlock(passphrase string, params cryptoDomain.KeyParams) error
	Lock()
}

// Passphrase reads the master passphrase from MASTER_PASSPHRASE.
func Passphrase() (string, error) {
	passphrase := os.Getenv(PassphraseEnv)
	if passphrase == "" {
		return "", fmt.Errorf("%s is not set", PassphraseEnv)
	}
	return passphrase, nil
}

// unlock reads the key params at paramsPath and unlocks session with them.
func unlock(session Session, passphrase, paramsPath string) error {
	var params cryptoDomain.KeyParams
	if err := readJSONFile(paramsPath, &params); err != nil {
		return fmt.Errorf("failed to read key params: %w", err)
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if err := session.Unlock(passphrase, params); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}
	return nil
}

// readJSONFile decodes the JSON document at path into v.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // operator supplied path
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// writeJSON writes v to writer as indented JSON.
func writeJSON(writer io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(writer, string(jsonBytes))
	return err
}

// writeJSONFile replaces the content of the file at path with v as indented
// JSON. A new file is created readable by the owner only.
func writeJSONFile(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return os.WriteFile(path, append(jsonBytes, '\n'), 0o600)
}

// validateFormat rejects output formats other than "text" and "json".
func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}
