package domain

import (
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
	customValidation "github.com/allisson/zkvault/internal/validation"
)

// The sealed forms embed the envelope so their JSON is the envelope fields plus
// the identifiers needed to rebuild the derivation context. KeyVersion starts at
// 0 and is bumped by every rotation; it selects the key the envelope was sealed
// under, so objects not rotated yet keep opening with their previous key.

// SealedVault is an encrypted VaultRecord.
type SealedVault struct {
	VaultID    string `json:"vaultId"              cbor:"vaultId"`
	KeyVersion uint32 `json:"keyVersion,omitempty" cbor:"keyVersion,omitempty"`
	cryptoDomain.Envelope
}

// Validate checks the identifiers are usable in a derivation context.
func (s *SealedVault) Validate() error {
	err := validation.ValidateStruct(s,
		validation.Field(&s.VaultID, validation.Required, customValidation.ObjectID),
	)
	return customValidation.WrapValidationError(err)
}

// SealedPassword is an encrypted PasswordRecord.
type SealedPassword struct {
	PasswordID string `json:"passwordId"           cbor:"passwordId"`
	VaultID    string `json:"vaultId"              cbor:"vaultId"`
	KeyVersion uint32 `json:"keyVersion,omitempty" cbor:"keyVersion,omitempty"`
	cryptoDomain.Envelope
}

// Validate checks the identifiers are usable in a derivation context.
func (s *SealedPassword) Validate() error {
	err := validation.ValidateStruct(s,
		validation.Field(&s.PasswordID, validation.Required, customValidation.ObjectID),
		validation.Field(&s.VaultID, validation.Required, customValidation.ObjectID),
	)
	return customValidation.WrapValidationError(err)
}

// SealedNote is a doubly encrypted NoteRecord. The embedded envelope is the
// outer layer; its payload is the inner envelope.
type SealedNote struct {
	NoteID     string `json:"noteId"               cbor:"noteId"`
	VaultID    string `json:"vaultId"              cbor:"vaultId"`
	KeyVersion uint32 `json:"keyVersion,omitempty" cbor:"keyVersion,omitempty"`
	cryptoDomain.Envelope
}

// Validate checks the identifiers are usable in a derivation context.
func (s *SealedNote) Validate() error {
	err := validation.ValidateStruct(s,
		validation.Field(&s.NoteID, validation.Required, customValidation.ObjectID),
		validation.Field(&s.VaultID, validation.Required, customValidation.ObjectID),
	)
	return customValidation.WrapValidationError(err)
}

// SealedAPIKey is an encrypted APIKeyRecord plus the SHA-256 hex of the key,
// which allows verification without decryption.
type SealedAPIKey struct {
	APIKeyID   string `json:"apiKeyId"             cbor:"apiKeyId"`
	HashedKey  string `json:"hashedKey"            cbor:"hashedKey"`
	KeyVersion uint32 `json:"keyVersion,omitempty" cbor:"keyVersion,omitempty"`
	cryptoDomain.Envelope
}

// Validate checks the identifiers are usable in a derivation context.
func (s *SealedAPIKey) Validate() error {
	err := validation.ValidateStruct(s,
		validation.Field(&s.APIKeyID, validation.Required, customValidation.ObjectID),
		validation.Field(&s.HashedKey, validation.Required, validation.Length(64, 64)),
	)
	return customValidation.WrapValidationError(err)
}

// GeneratedAPIKey is returned once by API key generation. APIKey is shown to the
// user and never stored; HashedKey and Metadata are stored.
type GeneratedAPIKey struct {
	APIKey    string        `json:"apiKey"`
	HashedKey string        `json:"hashedKey"`
	Metadata  *SealedAPIKey `json:"metadata"`
}
