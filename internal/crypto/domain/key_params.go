package domain

import (
	"crypto/rand"
	"fmt"

	validation "github.com/jellydator/validation"
)

// KeyParams holds the non-secret parameters needed to re-derive the root key from
// the passphrase. It is generated once at enrollment and persisted by the caller
// next to the user's envelopes; none of its fields allow decryption on their own.
type KeyParams struct {
	// Salt is shared by the slow hash and PBKDF2 (32 random bytes).
	Salt []byte `json:"salt"`
	// Iterations is the PBKDF2-SHA256 iteration count (at least 100000).
	Iterations int `json:"iterations"`
	// ArgonTime is the Argon2id pass count used by the slow hash.
	ArgonTime uint32 `json:"argonTime"`
	// ArgonMemory is the Argon2id memory cost in KiB.
	ArgonMemory uint32 `json:"argonMemory"`
	// ArgonThreads is the Argon2id parallelism.
	ArgonThreads uint8 `json:"argonThreads"`
	// Verifier is an Argon2id hash of a check value derived from the root key.
	// It lets unlock reject a wrong passphrase before any envelope is touched.
	Verifier string `json:"verifier,omitempty"`
}

// NewKeyParams returns parameters with a fresh random salt.
func NewKeyParams(iterations int, argonTime, argonMemory uint32, argonThreads uint8) (KeyParams, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return KeyParams{}, fmt.Errorf("%w: failed to generate salt: %v", ErrKeyDerivation, err)
	}
	params := KeyParams{
		Salt:         salt,
		Iterations:   iterations,
		ArgonTime:    argonTime,
		ArgonMemory:  argonMemory,
		ArgonThreads: argonThreads,
	}
	if err := params.Validate(); err != nil {
		return KeyParams{}, err
	}
	return params, nil
}

// Validate checks the parameters are strong enough to derive a root key.
func (p *KeyParams) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Salt, validation.Required, validation.Length(16, 0)),
		validation.Field(&p.Iterations, validation.Required, validation.Min(MinKDFIterations)),
		validation.Field(&p.ArgonTime, validation.Required),
		validation.Field(&p.ArgonMemory, validation.Required),
		validation.Field(&p.ArgonThreads, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return nil
}
