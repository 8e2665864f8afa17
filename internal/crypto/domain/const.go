package domain

import "fmt"

// Algorithm identifies the AEAD construction an envelope was sealed with.
//
// The algorithm name is recorded in every envelope and bound into its
// authenticated data, so an envelope can always be opened with the algorithm
// that sealed it even after the configured default changes.
type Algorithm string

const (
	// AESGCM is AES-256-GCM: 32-byte key, 12-byte nonce, 16-byte tag.
	AESGCM Algorithm = "aes-256-gcm"

	// ChaCha20 is ChaCha20-Poly1305: 32-byte key, 12-byte nonce, 16-byte tag.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// Key and envelope sizes shared by both algorithms.
const (
	KeySize   = 32
	NonceSize = 12
	TagSize   = 16
	SaltSize  = 32
)

// MinKDFIterations is the lowest PBKDF2 iteration count accepted for root key derivation.
const MinKDFIterations = 100000

// ParseAlgorithm maps a configuration value to an Algorithm.
// Both the canonical names and the short forms "aes-gcm" and "chacha20" are accepted.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case string(AESGCM), "aes-gcm":
		return AESGCM, nil
	case string(ChaCha20), "chacha20":
		return ChaCha20, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
}
