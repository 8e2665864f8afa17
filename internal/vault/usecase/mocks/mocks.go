// Package mocks provides mock implementations for testing vault use case consumers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	vaultDomain "github.com/allisson/zkvault/internal/vault/domain"
)

// MockVaultUseCase is a mock implementation of VaultUseCase for testing.
type MockVaultUseCase struct {
	mock.Mock
}

// EncryptVault mocks the EncryptVault method of VaultUseCase.
func (m *MockVaultUseCase) EncryptVault(
	ctx context.Context,
	vaultID string,
	record *vaultDomain.VaultRecord,
) (*vaultDomain.SealedVault, error) {
	args := m.Called(ctx, vaultID, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.SealedVault), args.Error(1)
}

// DecryptVault mocks the DecryptVault method of VaultUseCase.
func (m *MockVaultUseCase) DecryptVault(
	ctx context.Context,
	sealed *vaultDomain.SealedVault,
) (*vaultDomain.VaultRecord, error) {
	args := m.Called(ctx, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.VaultRecord), args.Error(1)
}

// ReencryptVault mocks the ReencryptVault method of VaultUseCase.
func (m *MockVaultUseCase) ReencryptVault(
	ctx context.Context,
	sealed *vaultDomain.SealedVault,
) (*vaultDomain.SealedVault, error) {
	args := m.Called(ctx, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.SealedVault), args.Error(1)
}

// EncryptPassword mocks the EncryptPassword method of VaultUseCase.
func (m *MockVaultUseCase) EncryptPassword(
	ctx context.Context,
	vaultID string,
	record *vaultDomain.PasswordRecord,
) (*vaultDomain.SealedPassword, error) {
	args := m.Called(ctx, vaultID, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.SealedPassword), args.Error(1)
}

// DecryptPassword mocks the DecryptPassword method of VaultUseCase.
func (m *MockVaultUseCase) DecryptPassword(
	ctx context.Context,
	sealed *vaultDomain.SealedPassword,
) (*vaultDomain.PasswordRecord, error) {
	args := m.Called(ctx, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.PasswordRecord), args.Error(1)
}

// ReencryptPassword mocks the ReencryptPassword method of VaultUseCase.
func (m *MockVaultUseCase) ReencryptPassword(
	ctx context.Context,
	sealed *vaultDomain.SealedPassword,
) (*vaultDomain.SealedPassword, error) {
	args := m.Called(ctx, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.SealedPassword), args.Error(1)
}

// EncryptNote mocks the EncryptNote method of VaultUseCase.
func (m *MockVaultUseCase) EncryptNote(
	ctx context.Context,
	vaultID string,
	record *vaultDomain.NoteRecord,
) (*vaultDomain.SealedNote, error) {
	args := m.Called(ctx, vaultID, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.SealedNote), args.Error(1)
}

// DecryptNote mocks the DecryptNote method of VaultUseCase.
func (m *MockVaultUseCase) DecryptNote(
	ctx context.Context,
	sealed *vaultDomain.SealedNote,
) (*vaultDomain.NoteRecord, error) {
	args := m.Called(ctx, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.NoteRecord), args.Error(1)
}

// ReencryptNote mocks the ReencryptNote method of VaultUseCase.
func (m *MockVaultUseCase) ReencryptNote(
	ctx context.Context,
	sealed *vaultDomain.SealedNote,
) (*vaultDomain.SealedNote, error) {
	args := m.Called(ctx, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.SealedNote), args.Error(1)
}

// EncryptAPIKey mocks the EncryptAPIKey method of VaultUseCase.
func (m *MockVaultUseCase) EncryptAPIKey(
	ctx context.Context,
	record *vaultDomain.APIKeyRecord,
) (*vaultDomain.SealedAPIKey, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.SealedAPIKey), args.Error(1)
}

// DecryptAPIKey mocks the DecryptAPIKey method of VaultUseCase.
func (m *MockVaultUseCase) DecryptAPIKey(
	ctx context.Context,
	sealed *vaultDomain.SealedAPIKey,
) (*vaultDomain.APIKeyRecord, error) {
	args := m.Called(ctx, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.APIKeyRecord), args.Error(1)
}

// ReencryptAPIKey mocks the ReencryptAPIKey method of VaultUseCase.
func (m *MockVaultUseCase) ReencryptAPIKey(
	ctx context.Context,
	sealed *vaultDomain.SealedAPIKey,
) (*vaultDomain.SealedAPIKey, error) {
	args := m.Called(ctx, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.SealedAPIKey), args.Error(1)
}

// GenerateAPIKey mocks the GenerateAPIKey method of VaultUseCase.
func (m *MockVaultUseCase) GenerateAPIKey(ctx context.Context) (*vaultDomain.GeneratedAPIKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.GeneratedAPIKey), args.Error(1)
}

// VerifyAPIKey mocks the VerifyAPIKey method of VaultUseCase.
func (m *MockVaultUseCase) VerifyAPIKey(apiKey, hashedKey string) bool {
	args := m.Called(apiKey, hashedKey)
	return args.Bool(0)
}

// Status mocks the Status method of VaultUseCase.
func (m *MockVaultUseCase) Status(ctx context.Context) vaultDomain.Status {
	args := m.Called(ctx)
	return args.Get(0).(vaultDomain.Status)
}
