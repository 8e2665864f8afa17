package usecase

import (
	"context"
	"time"

	"github.com/allisson/zkvault/internal/metrics"
	vaultDomain "github.com/allisson/zkvault/internal/vault/domain"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// EncryptVault records metrics for vault sealing operations.
func (v *vaultUseCaseWithMetrics) EncryptVault(
	ctx context.Context,
	vaultID string,
	record *vaultDomain.VaultRecord,
) (*vaultDomain.SealedVault, error) {
	start := time.Now()
	result, err := v.next.EncryptVault(ctx, vaultID, record)
	v.record(ctx, "vault_encrypt", start, err)
	return result, err
}

// DecryptVault records metrics for vault opening operations.
func (v *vaultUseCaseWithMetrics) DecryptVault(
	ctx context.Context,
	sealed *vaultDomain.SealedVault,
) (*vaultDomain.VaultRecord, error) {
	start := time.Now()
	result, err := v.next.DecryptVault(ctx, sealed)
	v.record(ctx, "vault_decrypt", start, err)
	return result, err
}

// ReencryptVault records metrics for vault resealing operations.
func (v *vaultUseCaseWithMetrics) ReencryptVault(
	ctx context.Context,
	sealed *vaultDomain.SealedVault,
) (*vaultDomain.SealedVault, error) {
	start := time.Now()
	result, err := v.next.ReencryptVault(ctx, sealed)
	v.record(ctx, "vault_reencrypt", start, err)
	return result, err
}

// EncryptPassword records metrics for password sealing operations.
func (v *vaultUseCaseWithMetrics) EncryptPassword(
	ctx context.Context,
	vaultID string,
	record *vaultDomain.PasswordRecord,
) (*vaultDomain.SealedPassword, error) {
	start := time.Now()
	result, err := v.next.EncryptPassword(ctx, vaultID, record)
	v.record(ctx, "password_encrypt", start, err)
	return result, err
}

// DecryptPassword records metrics for password opening operations.
func (v *vaultUseCaseWithMetrics) DecryptPassword(
	ctx context.Context,
	sealed *vaultDomain.SealedPassword,
) (*vaultDomain.PasswordRecord, error) {
	start := time.Now()
	result, err := v.next.DecryptPassword(ctx, sealed)
	v.record(ctx, "password_decrypt", start, err)
	return result, err
}

// ReencryptPassword records metrics for password resealing operations.
func (v *vaultUseCaseWithMetrics) ReencryptPassword(
	ctx context.Context,
	sealed *vaultDomain.SealedPassword,
) (*vaultDomain.SealedPassword, error) {
	start := time.Now()
	result, err := v.next.ReencryptPassword(ctx, sealed)
	v.record(ctx, "password_reencrypt", start, err)
	return result, err
}

// EncryptNote records metrics for note sealing operations.
func (v *vaultUseCaseWithMetrics) EncryptNote(
	ctx context.Context,
	vaultID string,
	record *vaultDomain.NoteRecord,
) (*vaultDomain.SealedNote, error) {
	start := time.Now()
	result, err := v.next.EncryptNote(ctx, vaultID, record)
	v.record(ctx, "note_encrypt", start, err)
	return result, err
}

// DecryptNote records metrics for note opening operations.
func (v *vaultUseCaseWithMetrics) DecryptNote(
	ctx context.Context,
	sealed *vaultDomain.SealedNote,
) (*vaultDomain.NoteRecord, error) {
	start := time.Now()
	result, err := v.next.DecryptNote(ctx, sealed)
	v.record(ctx, "note_decrypt", start, err)
	return result, err
}

// ReencryptNote records metrics for note resealing operations.
func (v *vaultUseCaseWithMetrics) ReencryptNote(
	ctx context.Context,
	sealed *vaultDomain.SealedNote,
) (*vaultDomain.SealedNote, error) {
	start := time.Now()
	result, err := v.next.ReencryptNote(ctx, sealed)
	v.record(ctx, "note_reencrypt", start, err)
	return result, err
}

// EncryptAPIKey records metrics for API key sealing operations.
func (v *vaultUseCaseWithMetrics) EncryptAPIKey(
	ctx context.Context,
	record *vaultDomain.APIKeyRecord,
) (*vaultDomain.SealedAPIKey, error) {
	start := time.Now()
	result, err := v.next.EncryptAPIKey(ctx, record)
	v.record(ctx, "api_key_encrypt", start, err)
	return result, err
}

// DecryptAPIKey records metrics for API key opening operations.
func (v *vaultUseCaseWithMetrics) DecryptAPIKey(
	ctx context.Context,
	sealed *vaultDomain.SealedAPIKey,
) (*vaultDomain.APIKeyRecord, error) {
	start := time.Now()
	result, err := v.next.DecryptAPIKey(ctx, sealed)
	v.record(ctx, "api_key_decrypt", start, err)
	return result, err
}

// ReencryptAPIKey records metrics for API key resealing operations.
func (v *vaultUseCaseWithMetrics) ReencryptAPIKey(
	ctx context.Context,
	sealed *vaultDomain.SealedAPIKey,
) (*vaultDomain.SealedAPIKey, error) {
	start := time.Now()
	result, err := v.next.ReencryptAPIKey(ctx, sealed)
	v.record(ctx, "api_key_reencrypt", start, err)
	return result, err
}

// GenerateAPIKey records metrics for API key generation operations.
func (v *vaultUseCaseWithMetrics) GenerateAPIKey(ctx context.Context) (*vaultDomain.GeneratedAPIKey, error) {
	start := time.Now()
	generated, err := v.next.GenerateAPIKey(ctx)
	v.record(ctx, "api_key_generate", start, err)
	return generated, err
}

// VerifyAPIKey delegates without recording metrics; it takes no context.
func (v *vaultUseCaseWithMetrics) VerifyAPIKey(apiKey, hashedKey string) bool {
	return v.next.VerifyAPIKey(apiKey, hashedKey)
}

// Status delegates without recording metrics.
func (v *vaultUseCaseWithMetrics) Status(ctx context.Context) vaultDomain.Status {
	return v.next.Status(ctx)
}

func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, v.metrics, "vault", operation, start, err)
}
