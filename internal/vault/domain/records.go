// Package domain defines the plaintext records and sealed forms of the objects
// protected by the vault: vault metadata, password entries, secure notes and API keys.
//
// Records only exist in memory. Sealed forms carry the identifiers needed to
// re-derive the object's key next to its envelope and are safe to persist.
package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/zkvault/internal/validation"
)

// VaultRecord holds the metadata of a vault.
type VaultRecord struct {
	Name        string `json:"name"                  cbor:"name"`
	Description string `json:"description,omitempty" cbor:"description,omitempty"`
}

// Validate checks the vault has a name.
func (r *VaultRecord) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 4096)),
	)
	return customValidation.WrapValidationError(err)
}

// PasswordRecord is a stored credential.
type PasswordRecord struct {
	Title    string   `json:"title"              cbor:"title"`
	Username string   `json:"username,omitempty" cbor:"username,omitempty"`
	Password string   `json:"password"           cbor:"password"`
	URL      string   `json:"url,omitempty"      cbor:"url,omitempty"`
	Notes    string   `json:"notes,omitempty"    cbor:"notes,omitempty"`
	Tags     []string `json:"tags,omitempty"     cbor:"tags,omitempty"`
}

// Validate checks the entry has a title and a password.
func (r *PasswordRecord) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Username, validation.Length(0, 255)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 4096)),
		validation.Field(&r.URL, validation.Length(0, 2048), customValidation.NoWhitespace),
		validation.Field(&r.Tags, validation.Each(validation.Required, customValidation.NotBlank)),
	)
	return customValidation.WrapValidationError(err)
}

// NoteRecord is a secure note.
type NoteRecord struct {
	Title   string   `json:"title"          cbor:"title"`
	Content string   `json:"content"        cbor:"content"`
	Tags    []string `json:"tags,omitempty" cbor:"tags,omitempty"`
}

// Validate checks the note has a title.
func (r *NoteRecord) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Content, validation.Length(0, 1<<20)),
		validation.Field(&r.Tags, validation.Each(validation.Required, customValidation.NotBlank)),
	)
	return customValidation.WrapValidationError(err)
}

// APIKeyRecord is the recoverable form of an API key.
type APIKeyRecord struct {
	Key  string `json:"key"            cbor:"key"`
	Name string `json:"name,omitempty" cbor:"name,omitempty"`
	// CreatedAt is the creation time in Unix milliseconds.
	CreatedAt int64 `json:"createdAt" cbor:"createdAt"`
}

// Validate checks the record carries a key.
func (r *APIKeyRecord) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Key, validation.Required, customValidation.NoWhitespace, validation.Length(16, 512)),
		validation.Field(&r.Name, validation.Length(0, 255)),
	)
	return customValidation.WrapValidationError(err)
}
