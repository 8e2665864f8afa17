package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
	cryptoService "github.com/allisson/zkvault/internal/crypto/service"
	customValidation "github.com/allisson/zkvault/internal/validation"
	vaultDomain "github.com/allisson/zkvault/internal/vault/domain"
)

// vaultUseCase implements the VaultUseCase interface.
type vaultUseCase struct {
	session     Session
	sealer      cryptoService.Sealer
	hashService cryptoService.HashService
	scheduler   RotationScheduler
	now         func() time.Time
}

// EncryptVault seals the vault metadata under "vault:{vaultID}".
func (v *vaultUseCase) EncryptVault(
	ctx context.Context,
	vaultID string,
	record *vaultDomain.VaultRecord,
) (*vaultDomain.SealedVault, error) {
	return v.sealVault(vaultID, 0, record)
}

func (v *vaultUseCase) sealVault(
	vaultID string,
	keyVersion uint32,
	record *vaultDomain.VaultRecord,
) (*vaultDomain.SealedVault, error) {
	if err := v.requireUnlocked(); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, vaultDomain.ErrMissingObject
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	keyContext, err := cryptoDomain.VaultContext(vaultID)
	if err != nil {
		return nil, err
	}

	env, err := v.seal(keyContext, keyVersion, record)
	if err != nil {
		return nil, err
	}
	v.scheduler.ScheduleRotation(keyContext, env.KeyID)

	return &vaultDomain.SealedVault{VaultID: vaultID, KeyVersion: keyVersion, Envelope: *env}, nil
}

// DecryptVault opens a sealed vault.
func (v *vaultUseCase) DecryptVault(
	ctx context.Context,
	sealed *vaultDomain.SealedVault,
) (*vaultDomain.VaultRecord, error) {
	if err := v.requireUnlocked(); err != nil {
		return nil, err
	}
	if sealed == nil {
		return nil, vaultDomain.ErrMissingObject
	}
	if err := sealed.Validate(); err != nil {
		return nil, err
	}
	keyContext, err := cryptoDomain.VaultContext(sealed.VaultID)
	if err != nil {
		return nil, err
	}

	var record vaultDomain.VaultRecord
	if err := v.open(keyContext, sealed.KeyVersion, &sealed.Envelope, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ReencryptVault reseals a vault under the next key version of its id.
func (v *vaultUseCase) ReencryptVault(
	ctx context.Context,
	sealed *vaultDomain.SealedVault,
) (*vaultDomain.SealedVault, error) {
	record, err := v.DecryptVault(ctx, sealed)
	if err != nil {
		return nil, err
	}
	return v.sealVault(sealed.VaultID, sealed.KeyVersion+1, record)
}

// EncryptPassword seals a password entry under "password:{vaultID}:{passwordID}"
// with a freshly generated password id.
func (v *vaultUseCase) EncryptPassword(
	ctx context.Context,
	vaultID string,
	record *vaultDomain.PasswordRecord,
) (*vaultDomain.SealedPassword, error) {
	return v.sealPassword(vaultID, uuid.Must(uuid.NewV7()).String(), 0, record)
}

// DecryptPassword opens a sealed password entry.
func (v *vaultUseCase) DecryptPassword(
	ctx context.Context,
	sealed *vaultDomain.SealedPassword,
) (*vaultDomain.PasswordRecord, error) {
	if err := v.requireUnlocked(); err != nil {
		return nil, err
	}
	if sealed == nil {
		return nil, vaultDomain.ErrMissingObject
	}
	if err := sealed.Validate(); err != nil {
		return nil, err
	}
	keyContext, err := cryptoDomain.PasswordContext(sealed.VaultID, sealed.PasswordID)
	if err != nil {
		return nil, err
	}

	var record vaultDomain.PasswordRecord
	if err := v.open(keyContext, sealed.KeyVersion, &sealed.Envelope, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ReencryptPassword reseals a password entry under the next key version,
// keeping its ids.
func (v *vaultUseCase) ReencryptPassword(
	ctx context.Context,
	sealed *vaultDomain.SealedPassword,
) (*vaultDomain.SealedPassword, error) {
	record, err := v.DecryptPassword(ctx, sealed)
	if err != nil {
		return nil, err
	}
	return v.sealPassword(sealed.VaultID, sealed.PasswordID, sealed.KeyVersion+1, record)
}

func (v *vaultUseCase) sealPassword(
	vaultID, passwordID string,
	keyVersion uint32,
	record *vaultDomain.PasswordRecord,
) (*vaultDomain.SealedPassword, error) {
	if err := v.requireUnlocked(); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, vaultDomain.ErrMissingObject
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	keyContext, err := cryptoDomain.PasswordContext(vaultID, passwordID)
	if err != nil {
		return nil, err
	}

	env, err := v.seal(keyContext, keyVersion, record)
	if err != nil {
		return nil, err
	}
	v.scheduler.ScheduleRotation(keyContext, env.KeyID)

	return &vaultDomain.SealedPassword{
		PasswordID: passwordID,
		VaultID:    vaultID,
		KeyVersion: keyVersion,
		Envelope:   *env,
	}, nil
}

// EncryptNote seals a note twice. The inner envelope is sealed under
// "note:{vaultID}:{noteID}" and becomes the payload of the outer envelope,
// sealed under "secondary:{vaultID}:{noteID}". Both layers share the key version
// and the note is scheduled for rotation under its "note:" scope.
func (v *vaultUseCase) EncryptNote(
	ctx context.Context,
	vaultID string,
	record *vaultDomain.NoteRecord,
) (*vaultDomain.SealedNote, error) {
	return v.sealNote(vaultID, uuid.Must(uuid.NewV7()).String(), 0, record)
}

// DecryptNote opens the outer envelope, then the inner one.
func (v *vaultUseCase) DecryptNote(
	ctx context.Context,
	sealed *vaultDomain.SealedNote,
) (*vaultDomain.NoteRecord, error) {
	if err := v.requireUnlocked(); err != nil {
		return nil, err
	}
	if sealed == nil {
		return nil, vaultDomain.ErrMissingObject
	}
	if err := sealed.Validate(); err != nil {
		return nil, err
	}
	innerContext, err := cryptoDomain.NoteContext(sealed.VaultID, sealed.NoteID)
	if err != nil {
		return nil, err
	}
	outerContext, err := cryptoDomain.SecondaryNoteContext(sealed.VaultID, sealed.NoteID)
	if err != nil {
		return nil, err
	}

	var inner cryptoDomain.Envelope
	if err := v.open(outerContext, sealed.KeyVersion, &sealed.Envelope, &inner); err != nil {
		return nil, err
	}

	var record vaultDomain.NoteRecord
	if err := v.open(innerContext, sealed.KeyVersion, &inner, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ReencryptNote reseals both layers of a note under the next key version,
// keeping its ids.
func (v *vaultUseCase) ReencryptNote(
	ctx context.Context,
	sealed *vaultDomain.SealedNote,
) (*vaultDomain.SealedNote, error) {
	record, err := v.DecryptNote(ctx, sealed)
	if err != nil {
		return nil, err
	}
	return v.sealNote(sealed.VaultID, sealed.NoteID, sealed.KeyVersion+1, record)
}

func (v *vaultUseCase) sealNote(
	vaultID, noteID string,
	keyVersion uint32,
	record *vaultDomain.NoteRecord,
) (*vaultDomain.SealedNote, error) {
	if err := v.requireUnlocked(); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, vaultDomain.ErrMissingObject
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	innerContext, err := cryptoDomain.NoteContext(vaultID, noteID)
	if err != nil {
		return nil, err
	}
	outerContext, err := cryptoDomain.SecondaryNoteContext(vaultID, noteID)
	if err != nil {
		return nil, err
	}

	inner, err := v.seal(innerContext, keyVersion, record)
	if err != nil {
		return nil, err
	}
	outer, err := v.seal(outerContext, keyVersion, inner)
	if err != nil {
		return nil, err
	}
	v.scheduler.ScheduleRotation(innerContext, inner.KeyID)

	return &vaultDomain.SealedNote{
		NoteID:     noteID,
		VaultID:    vaultID,
		KeyVersion: keyVersion,
		Envelope:   *outer,
	}, nil
}

// EncryptAPIKey seals an API key under "api:{apiKeyID}" with a fresh API key id.
func (v *vaultUseCase) EncryptAPIKey(
	ctx context.Context,
	record *vaultDomain.APIKeyRecord,
) (*vaultDomain.SealedAPIKey, error) {
	return v.sealAPIKey(uuid.Must(uuid.NewV7()).String(), 0, record)
}

// DecryptAPIKey opens a sealed API key.
func (v *vaultUseCase) DecryptAPIKey(
	ctx context.Context,
	sealed *vaultDomain.SealedAPIKey,
) (*vaultDomain.APIKeyRecord, error) {
	if err := v.requireUnlocked(); err != nil {
		return nil, err
	}
	if sealed == nil {
		return nil, vaultDomain.ErrMissingObject
	}
	if err := sealed.Validate(); err != nil {
		return nil, err
	}
	keyContext, err := cryptoDomain.APIKeyContext(sealed.APIKeyID)
	if err != nil {
		return nil, err
	}

	var record vaultDomain.APIKeyRecord
	if err := v.open(keyContext, sealed.KeyVersion, &sealed.Envelope, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// ReencryptAPIKey reseals an API key under the next key version, keeping its id and hash.
func (v *vaultUseCase) ReencryptAPIKey(
	ctx context.Context,
	sealed *vaultDomain.SealedAPIKey,
) (*vaultDomain.SealedAPIKey, error) {
	record, err := v.DecryptAPIKey(ctx, sealed)
	if err != nil {
		return nil, err
	}
	return v.sealAPIKey(sealed.APIKeyID, sealed.KeyVersion+1, record)
}

func (v *vaultUseCase) sealAPIKey(
	apiKeyID string,
	keyVersion uint32,
	record *vaultDomain.APIKeyRecord,
) (*vaultDomain.SealedAPIKey, error) {
	if err := v.requireUnlocked(); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, vaultDomain.ErrMissingObject
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	keyContext, err := cryptoDomain.APIKeyContext(apiKeyID)
	if err != nil {
		return nil, err
	}

	env, err := v.seal(keyContext, keyVersion, record)
	if err != nil {
		return nil, err
	}
	v.scheduler.ScheduleRotation(keyContext, env.KeyID)

	return &vaultDomain.SealedAPIKey{
		APIKeyID:   apiKeyID,
		HashedKey:  v.hashService.Hash([]byte(record.Key)),
		KeyVersion: keyVersion,
		Envelope:   *env,
	}, nil
}

// GenerateAPIKey creates "agies_" followed by 32 random bytes in hex, then seals it.
func (v *vaultUseCase) GenerateAPIKey(ctx context.Context) (*vaultDomain.GeneratedAPIKey, error) {
	if err := v.requireUnlocked(); err != nil {
		return nil, err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate api key: %w", err)
	}
	defer cryptoDomain.Zero(raw)
	apiKey := customValidation.APIKeyPrefix + hex.EncodeToString(raw)

	sealed, err := v.EncryptAPIKey(ctx, &vaultDomain.APIKeyRecord{
		Key:       apiKey,
		CreatedAt: v.now().UnixMilli(),
	})
	if err != nil {
		return nil, err
	}

	return &vaultDomain.GeneratedAPIKey{
		APIKey:    apiKey,
		HashedKey: sealed.HashedKey,
		Metadata:  sealed,
	}, nil
}

// VerifyAPIKey compares the SHA-256 hex of apiKey against hashedKey. Keys not
// shaped like a generated key are rejected without hashing.
func (v *vaultUseCase) VerifyAPIKey(apiKey, hashedKey string) bool {
	if err := validation.Validate(apiKey, customValidation.APIKey); err != nil {
		return false
	}
	return v.hashService.Equal([]byte(apiKey), hashedKey)
}

// Status reports whether the session is unlocked and how many rotations are scheduled and due.
func (v *vaultUseCase) Status(ctx context.Context) vaultDomain.Status {
	return vaultDomain.Status{
		Unlocked:           v.session.IsUnlocked(),
		ScheduledRotations: v.scheduler.Len(),
		PendingRotations:   len(v.scheduler.GetPendingRotations()),
	}
}

func (v *vaultUseCase) requireUnlocked() error {
	if !v.session.IsUnlocked() {
		return cryptoDomain.ErrNoMasterKey
	}
	return nil
}

// seal derives the key for keyContext at keyVersion, seals payload under it and
// destroys the key.
func (v *vaultUseCase) seal(
	keyContext string,
	keyVersion uint32,
	payload any,
) (*cryptoDomain.Envelope, error) {
	key, err := v.session.DeriveScopedKey(cryptoDomain.VersionedContext(keyContext, keyVersion))
	if err != nil {
		return nil, err
	}
	defer key.Destroy()
	return v.sealer.Seal(payload, key)
}

// open derives the key for keyContext at keyVersion, opens env into out and
// destroys the key.
func (v *vaultUseCase) open(keyContext string, keyVersion uint32, env *cryptoDomain.Envelope, out any) error {
	key, err := v.session.DeriveScopedKey(cryptoDomain.VersionedContext(keyContext, keyVersion))
	if err != nil {
		return err
	}
	defer key.Destroy()
	return v.sealer.Open(env, key, out)
}

// NewVaultUseCase creates a new vault use case instance with the provided dependencies.
func NewVaultUseCase(
	session Session,
	sealer cryptoService.Sealer,
	hashService cryptoService.HashService,
	scheduler RotationScheduler,
) VaultUseCase {
	return &vaultUseCase{
		session:     session,
		sealer:      sealer,
		hashService: hashService,
		scheduler:   scheduler,
		now:         time.Now,
	}
}
