// Package usecase defines the interfaces and implementations for sealing vault
// objects. Each object is encrypted under its own scoped key, derived on demand
// from the session's root key and never stored.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
	rotationDomain "github.com/allisson/zkvault/internal/rotation/domain"
	vaultDomain "github.com/allisson/zkvault/internal/vault/domain"
)

// Session defines the key source of the vault use case.
type Session interface {
	DeriveScopedKey(context string) (*cryptoDomain.ScopedKey, error)
	IsUnlocked() bool
}

// RotationScheduler defines the rotation bookkeeping performed after sealing.
type RotationScheduler interface {
	ScheduleRotation(scope, keyID string)
	GetPendingRotations() []rotationDomain.Entry
	Len() int
}

// VaultUseCase defines the interface for sealing and opening vault objects.
//
// Every method returns ErrNoMasterKey while the session is locked. Open failures
// return ErrAuthenticationFailed regardless of whether the envelope was tampered
// with or the identifiers are wrong.
type VaultUseCase interface {
	EncryptVault(ctx context.Context, vaultID string, record *vaultDomain.VaultRecord) (*vaultDomain.SealedVault, error)
	DecryptVault(ctx context.Context, sealed *vaultDomain.SealedVault) (*vaultDomain.VaultRecord, error)
	ReencryptVault(ctx context.Context, sealed *vaultDomain.SealedVault) (*vaultDomain.SealedVault, error)

	// EncryptPassword seals record under a fresh password id, returned in the sealed form.
	EncryptPassword(
		ctx context.Context,
		vaultID string,
		record *vaultDomain.PasswordRecord,
	) (*vaultDomain.SealedPassword, error)
	DecryptPassword(ctx context.Context, sealed *vaultDomain.SealedPassword) (*vaultDomain.PasswordRecord, error)
	ReencryptPassword(ctx context.Context, sealed *vaultDomain.SealedPassword) (*vaultDomain.SealedPassword, error)

	// EncryptNote seals record twice: under the note key, then under the secondary key.
	EncryptNote(ctx context.Context, vaultID string, record *vaultDomain.NoteRecord) (*vaultDomain.SealedNote, error)
	DecryptNote(ctx context.Context, sealed *vaultDomain.SealedNote) (*vaultDomain.NoteRecord, error)
	ReencryptNote(ctx context.Context, sealed *vaultDomain.SealedNote) (*vaultDomain.SealedNote, error)

	// EncryptAPIKey seals record under a fresh API key id and stores the SHA-256 hex of the key.
	EncryptAPIKey(ctx context.Context, record *vaultDomain.APIKeyRecord) (*vaultDomain.SealedAPIKey, error)
	DecryptAPIKey(ctx context.Context, sealed *vaultDomain.SealedAPIKey) (*vaultDomain.APIKeyRecord, error)
	ReencryptAPIKey(ctx context.Context, sealed *vaultDomain.SealedAPIKey) (*vaultDomain.SealedAPIKey, error)

	// GenerateAPIKey creates a random "agies_" key. The plaintext key is only ever returned here.
	GenerateAPIKey(ctx context.Context) (*vaultDomain.GeneratedAPIKey, error)
	// VerifyAPIKey reports whether apiKey is shaped like a generated key and hashes
	// to hashedKey, in constant time.
	VerifyAPIKey(apiKey, hashedKey string) bool

	Status(ctx context.Context) vaultDomain.Status
}
