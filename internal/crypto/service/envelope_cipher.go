package service

import (
	"fmt"
	"time"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
)

// EnvelopeCipher seals structured payloads into envelopes and opens them again.
// It never derives keys itself; callers pass the scoped key for the object.
type EnvelopeCipher struct {
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm
	now         func() time.Time
}

// NewEnvelopeCipher creates an EnvelopeCipher that seals with alg.
// Envelopes are always opened with the algorithm recorded in them.
func NewEnvelopeCipher(aeadManager AEADManager, alg cryptoDomain.Algorithm) *EnvelopeCipher {
	return &EnvelopeCipher{
		aeadManager: aeadManager,
		algorithm:   alg,
		now:         time.Now,
	}
}

// Seal encodes plaintext canonically and encrypts it under key with a fresh random IV.
func (c *EnvelopeCipher) Seal(
	plaintext any,
	key *cryptoDomain.ScopedKey,
) (*cryptoDomain.Envelope, error) {
	if key == nil || len(key.Key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	payload, err := encodePayload(plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	defer cryptoDomain.Zero(payload)

	aead, err := c.aeadManager.CreateCipher(key.Key, c.algorithm)
	if err != nil {
		return nil, err
	}

	env := &cryptoDomain.Envelope{
		KeyID:     key.KeyID(),
		Algorithm: c.algorithm,
		Timestamp: c.now().UnixMilli(),
	}
	sealed, nonce, err := aead.Encrypt(payload, env.AdditionalData())
	if err != nil {
		return nil, fmt.Errorf("failed to seal payload: %w", err)
	}

	split := len(sealed) - cryptoDomain.TagSize
	env.Ciphertext = sealed[:split:split]
	env.Tag = sealed[split:]
	env.IV = nonce
	return env, nil
}

// Open authenticates env under key, decrypts it and decodes the payload into out.
//
// A malformed envelope or a failed tag check returns ErrAuthenticationFailed.
// A payload that authenticates but does not decode into out returns ErrDeserialization.
func (c *EnvelopeCipher) Open(
	env *cryptoDomain.Envelope,
	key *cryptoDomain.ScopedKey,
	out any,
) error {
	if env == nil {
		return cryptoDomain.ErrAuthenticationFailed
	}
	if err := env.Validate(); err != nil {
		return fmt.Errorf("%w: %v", cryptoDomain.ErrAuthenticationFailed, err)
	}
	if key == nil || len(key.Key) != cryptoDomain.KeySize {
		return cryptoDomain.ErrInvalidKeySize
	}

	aead, err := c.aeadManager.CreateCipher(key.Key, env.Algorithm)
	if err != nil {
		return err
	}

	sealed := make([]byte, 0, len(env.Ciphertext)+len(env.Tag))
	sealed = append(sealed, env.Ciphertext...)
	sealed = append(sealed, env.Tag...)

	payload, err := aead.Decrypt(sealed, env.IV, env.AdditionalData())
	if err != nil {
		return cryptoDomain.ErrAuthenticationFailed
	}
	defer cryptoDomain.Zero(payload)

	if err := decodePayload(payload, out); err != nil {
		return cryptoDomain.ErrDeserialization
	}
	return nil
}
