package domain

import (
	"github.com/allisson/zkvault/internal/errors"
)

// Cryptographic error definitions.
//
// Every failure of the engine maps to one of these sentinels. Callers match
// them with errors.Is instead of inspecting messages.
var (
	// ErrNoMasterKey indicates an operation was attempted while the session is locked.
	// It is never retried automatically: the user has to unlock again.
	ErrNoMasterKey = errors.Wrap(errors.ErrUnauthorized, "no master key")

	// ErrKeyDerivation indicates the root key could not be derived, either because the
	// passphrase or derivation parameters are malformed or a primitive failed.
	ErrKeyDerivation = errors.Wrap(errors.ErrInvalidInput, "key derivation failed")

	// ErrInvalidPassphrase indicates the derived root key does not match the stored verifier.
	ErrInvalidPassphrase = errors.Wrap(ErrKeyDerivation, "invalid passphrase")

	// ErrAuthenticationFailed indicates an envelope could not be authenticated.
	//
	// This covers tampering, a key derived from the wrong context and corrupted
	// storage alike. The cause is deliberately not disclosed.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrInvalidInput, "authentication failed")

	// ErrDeserialization indicates an envelope authenticated but its payload is not the
	// expected structure. It matches ErrAuthenticationFailed as well so that user-facing
	// handling cannot tell the two apart.
	ErrDeserialization = errors.Wrap(ErrAuthenticationFailed, "malformed payload")

	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is unknown.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidContext indicates a derivation context is missing one of its identifiers.
	ErrInvalidContext = errors.Wrap(errors.ErrInvalidInput, "invalid derivation context")
)
