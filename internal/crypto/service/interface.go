// Package service implements the cryptographic engine of the vault: root key
// derivation, scoped key derivation and AEAD envelope sealing.
package service

import (
	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext (tag appended) and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)
	// Decrypt verifies and decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyDeriver derives scoped keys from the current root key.
type KeyDeriver interface {
	// DeriveScopedKey returns HMAC-SHA256(root, context). Fails with ErrNoMasterKey when locked.
	DeriveScopedKey(context string) (*cryptoDomain.ScopedKey, error)
}

// Sealer seals and opens envelopes under a given scoped key.
type Sealer interface {
	// Seal canonically encodes plaintext and encrypts it under key with a fresh nonce.
	Seal(plaintext any, key *cryptoDomain.ScopedKey) (*cryptoDomain.Envelope, error)
	// Open authenticates and decrypts env under key and decodes the payload into out.
	Open(env *cryptoDomain.Envelope, key *cryptoDomain.ScopedKey, out any) error
}

// HashService provides one-way hashing for equality checks without decryption.
type HashService interface {
	Hash(value []byte) string
	Equal(value []byte, hashed string) bool
}

// KeyVerifier hashes and verifies the root key check value stored in KeyParams.
type KeyVerifier interface {
	Hash(check []byte) (string, error)
	Verify(check []byte, verifier string) bool
}
