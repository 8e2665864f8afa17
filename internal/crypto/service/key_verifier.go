package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/zkvault/internal/errors"
)

// KeyCheckContext is the derivation context of the root key check value.
// Its prefix is outside every object scope so it can never collide with an object key.
const KeyCheckContext = "zkvault:key-check"

// pwdhashKeyVerifier implements KeyVerifier using Argon2id via go-pwdhash.
type pwdhashKeyVerifier struct {
	hasher *pwdhash.PasswordHasher
}

// NewKeyVerifier creates a KeyVerifier using the interactive Argon2id policy,
// since verification runs on every unlock.
func NewKeyVerifier() KeyVerifier {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		// This should never happen with a built-in policy
		panic(err)
	}
	return &pwdhashKeyVerifier{hasher: hasher}
}

// Hash returns the encoded Argon2id hash of the check value.
func (v *pwdhashKeyVerifier) Hash(check []byte) (string, error) {
	verifier, err := v.hasher.Hash(check)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash key check value")
	}
	return verifier, nil
}

// Verify compares the check value against a stored verifier in constant time.
func (v *pwdhashKeyVerifier) Verify(check []byte, verifier string) bool {
	ok, err := v.hasher.Verify(check, verifier)
	if err != nil {
		return false
	}
	return ok
}
