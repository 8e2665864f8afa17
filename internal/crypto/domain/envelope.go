package domain

import (
	"strconv"
	"time"

	validation "github.com/jellydator/validation"
)

// Envelope is the authenticated ciphertext of one payload plus the minimal metadata
// needed to open it again. It is safe to persist verbatim on an untrusted server:
// KeyID and Timestamp are non-secret, and the key itself is re-derived on demand.
//
// Envelopes are immutable. Updating an object produces a new envelope.
type Envelope struct {
	Ciphertext []byte    `json:"ciphertext" cbor:"ciphertext"`
	IV         []byte    `json:"iv"         cbor:"iv"`
	Tag        []byte    `json:"tag"        cbor:"tag"`
	KeyID      string    `json:"keyId"      cbor:"keyId"`
	Algorithm  Algorithm `json:"algorithm"  cbor:"algorithm"`
	// Timestamp is the sealing time in Unix milliseconds.
	Timestamp int64 `json:"timestamp" cbor:"timestamp"`
}

// CreatedAt returns the sealing time.
func (e *Envelope) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}

// AdditionalData returns the associated data authenticated alongside the
// ciphertext: "{algorithm}|{keyId}|{timestamp}". Changing any of them fails tag
// verification, so CreatedAt can be trusted once the envelope opens.
func (e *Envelope) AdditionalData() []byte {
	return []byte(string(e.Algorithm) + "|" + e.KeyID + "|" + strconv.FormatInt(e.Timestamp, 10))
}

// Validate checks the envelope has the shape produced by sealing.
func (e *Envelope) Validate() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.Ciphertext, validation.Required),
		validation.Field(&e.IV, validation.Required, validation.Length(NonceSize, NonceSize)),
		validation.Field(&e.Tag, validation.Required, validation.Length(TagSize, TagSize)),
		validation.Field(&e.KeyID, validation.Required, validation.Length(64, 64)),
		validation.Field(&e.Algorithm, validation.Required, validation.In(AESGCM, ChaCha20)),
		validation.Field(&e.Timestamp, validation.Required),
	)
}
