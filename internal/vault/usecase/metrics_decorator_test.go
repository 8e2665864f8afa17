package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
	"github.com/allisson/zkvault/internal/metrics"
	vaultDomain "github.com/allisson/zkvault/internal/vault/domain"
	vaultUsecaseMocks "github.com/allisson/zkvault/internal/vault/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var (
	_ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)
	_ VaultUseCase            = (*vaultUsecaseMocks.MockVaultUseCase)(nil)
)

func expectMetrics(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "vault", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "vault", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

// TestNewVaultUseCaseWithMetrics tests the metrics decorator constructor.
func TestNewVaultUseCaseWithMetrics(t *testing.T) {
	t.Parallel()

	decorator := NewVaultUseCaseWithMetrics(&vaultUsecaseMocks.MockVaultUseCase{}, &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*VaultUseCase)(nil), decorator)
}

// TestMetricsDecorator_EncryptPassword tests the EncryptPassword method with metrics.
func TestMetricsDecorator_EncryptPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	record := &vaultDomain.PasswordRecord{Title: "Gmail", Password: "p@ss1"}

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &vaultUsecaseMocks.MockVaultUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		expected := &vaultDomain.SealedPassword{PasswordID: "p1", VaultID: "v1"}
		mockUseCase.On("EncryptPassword", ctx, "v1", record).Return(expected, nil).Once()
		expectMetrics(mockMetrics, ctx, "password_encrypt", "success")

		decorator := NewVaultUseCaseWithMetrics(mockUseCase, mockMetrics)
		sealed, err := decorator.EncryptPassword(ctx, "v1", record)

		assert.NoError(t, err)
		assert.Equal(t, expected, sealed)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &vaultUsecaseMocks.MockVaultUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("EncryptPassword", ctx, "v1", record).Return(nil, cryptoDomain.ErrNoMasterKey).Once()
		expectMetrics(mockMetrics, ctx, "password_encrypt", "error")

		decorator := NewVaultUseCaseWithMetrics(mockUseCase, mockMetrics)
		sealed, err := decorator.EncryptPassword(ctx, "v1", record)

		assert.Nil(t, sealed)
		assert.ErrorIs(t, err, cryptoDomain.ErrNoMasterKey)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

// TestMetricsDecorator_Operations checks each method reports under its own operation name.
func TestMetricsDecorator_Operations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	failure := errors.New("boom")

	sealedVault := &vaultDomain.SealedVault{VaultID: "v1"}
	sealedPassword := &vaultDomain.SealedPassword{PasswordID: "p1", VaultID: "v1"}
	sealedNote := &vaultDomain.SealedNote{NoteID: "n1", VaultID: "v1"}
	sealedAPIKey := &vaultDomain.SealedAPIKey{APIKeyID: "k1"}
	vaultRecord := &vaultDomain.VaultRecord{Name: "n"}
	noteRecord := &vaultDomain.NoteRecord{Title: "t"}
	apiKeyRecord := &vaultDomain.APIKeyRecord{Key: "k"}

	tests := []struct {
		operation string
		method    string
		args      []interface{}
		call      func(uc VaultUseCase) error
	}{
		{"vault_encrypt", "EncryptVault", []interface{}{ctx, "v1", vaultRecord}, func(uc VaultUseCase) error {
			_, err := uc.EncryptVault(ctx, "v1", vaultRecord)
			return err
		}},
		{"vault_decrypt", "DecryptVault", []interface{}{ctx, sealedVault}, func(uc VaultUseCase) error {
			_, err := uc.DecryptVault(ctx, sealedVault)
			return err
		}},
		{"vault_reencrypt", "ReencryptVault", []interface{}{ctx, sealedVault}, func(uc VaultUseCase) error {
			_, err := uc.ReencryptVault(ctx, sealedVault)
			return err
		}},
		{"password_decrypt", "DecryptPassword", []interface{}{ctx, sealedPassword}, func(uc VaultUseCase) error {
			_, err := uc.DecryptPassword(ctx, sealedPassword)
			return err
		}},
		{"password_reencrypt", "ReencryptPassword", []interface{}{ctx, sealedPassword}, func(uc VaultUseCase) error {
			_, err := uc.ReencryptPassword(ctx, sealedPassword)
			return err
		}},
		{"note_encrypt", "EncryptNote", []interface{}{ctx, "v1", noteRecord}, func(uc VaultUseCase) error {
			_, err := uc.EncryptNote(ctx, "v1", noteRecord)
			return err
		}},
		{"note_decrypt", "DecryptNote", []interface{}{ctx, sealedNote}, func(uc VaultUseCase) error {
			_, err := uc.DecryptNote(ctx, sealedNote)
			return err
		}},
		{"note_reencrypt", "ReencryptNote", []interface{}{ctx, sealedNote}, func(uc VaultUseCase) error {
			_, err := uc.ReencryptNote(ctx, sealedNote)
			return err
		}},
		{"api_key_encrypt", "EncryptAPIKey", []interface{}{ctx, apiKeyRecord}, func(uc VaultUseCase) error {
			_, err := uc.EncryptAPIKey(ctx, apiKeyRecord)
			return err
		}},
		{"api_key_decrypt", "DecryptAPIKey", []interface{}{ctx, sealedAPIKey}, func(uc VaultUseCase) error {
			_, err := uc.DecryptAPIKey(ctx, sealedAPIKey)
			return err
		}},
		{"api_key_reencrypt", "ReencryptAPIKey", []interface{}{ctx, sealedAPIKey}, func(uc VaultUseCase) error {
			_, err := uc.ReencryptAPIKey(ctx, sealedAPIKey)
			return err
		}},
		{"api_key_generate", "GenerateAPIKey", []interface{}{ctx}, func(uc VaultUseCase) error {
			_, err := uc.GenerateAPIKey(ctx)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			t.Parallel()
			mockUseCase := &vaultUsecaseMocks.MockVaultUseCase{}
			mockMetrics := &mockBusinessMetrics{}

			mockUseCase.On(tt.method, tt.args...).Return(nil, failure).Once()
			expectMetrics(mockMetrics, ctx, tt.operation, "error")

			err := tt.call(NewVaultUseCaseWithMetrics(mockUseCase, mockMetrics))

			assert.ErrorIs(t, err, failure)
			mockUseCase.AssertExpectations(t)
			mockMetrics.AssertExpectations(t)
		})
	}
}

// TestMetricsDecorator_Passthrough checks methods without metrics only delegate.
func TestMetricsDecorator_Passthrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockUseCase := &vaultUsecaseMocks.MockVaultUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	mockUseCase.On("VerifyAPIKey", "agies_x", "hash").Return(true).Once()
	mockUseCase.On("Status", ctx).Return(vaultDomain.Status{Unlocked: true}).Once()

	decorator := NewVaultUseCaseWithMetrics(mockUseCase, mockMetrics)
	assert.True(t, decorator.VerifyAPIKey("agies_x", "hash"))
	assert.True(t, decorator.Status(ctx).Unlocked)

	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertNotCalled(t, "RecordOperation")
}
