package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Derivation context prefixes, one per protected object kind.
const (
	VaultScope     = "vault"
	PasswordScope  = "password"
	NoteScope      = "note"
	SecondaryScope = "secondary"
	APIKeyScope    = "api"
)

// ScopedKey is a 256-bit key derived from the root key for exactly one object.
//
// It is never persisted. The same Context always yields the same Key for the
// lifetime of a root key, so decryption only needs the identifiers already
// stored next to the envelope.
type ScopedKey struct {
	Context string
	Key     []byte
}

// KeyID returns the non-secret bookkeeping identifier of the key: hex(SHA-256(key)).
// It is used for rotation tracking only and cannot be used to recover the key.
func (k *ScopedKey) KeyID() string {
	return KeyID(k.Key)
}

// Destroy zeroes the key material.
func (k *ScopedKey) Destroy() {
	if k == nil {
		return
	}
	Zero(k.Key)
}

// KeyID returns hex(SHA-256(key)).
func KeyID(key []byte) string {
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:])
}

// VaultContext returns "vault:{vaultID}".
func VaultContext(vaultID string) (string, error) {
	return buildContext(VaultScope, vaultID)
}

// PasswordContext returns "password:{vaultID}:{passwordID}".
func PasswordContext(vaultID, passwordID string) (string, error) {
	return buildContext(PasswordScope, vaultID, passwordID)
}

// NoteContext returns "note:{vaultID}:{noteID}", the context of a note's inner envelope.
func NoteContext(vaultID, noteID string) (string, error) {
	return buildContext(NoteScope, vaultID, noteID)
}

// SecondaryNoteContext returns "secondary:{vaultID}:{noteID}", the context of a note's outer envelope.
func SecondaryNoteContext(vaultID, noteID string) (string, error) {
	return buildContext(SecondaryScope, vaultID, noteID)
}

// APIKeyContext returns "api:{apiKeyID}".
func APIKeyContext(apiKeyID string) (string, error) {
	return buildContext(APIKeyScope, apiKeyID)
}

// VersionedContext returns keyContext for key version 0 and
// "{keyContext}:v{version}" otherwise. Identifiers never contain ':', so a
// versioned context cannot collide with the context of another object.
func VersionedContext(keyContext string, version uint32) string {
	if version == 0 {
		return keyContext
	}
	return keyContext + ":v" + strconv.FormatUint(uint64(version), 10)
}

// buildContext joins the identifiers with ":". Identifiers may not be empty or
// contain ":" themselves, otherwise two different objects could share a context.
func buildContext(scope string, ids ...string) (string, error) {
	for _, id := range ids {
		if id == "" {
			return "", fmt.Errorf("%w: %s identifier is empty", ErrInvalidContext, scope)
		}
		if strings.Contains(id, ":") {
			return "", fmt.Errorf("%w: %s identifier %q contains ':'", ErrInvalidContext, scope, id)
		}
	}
	return scope + ":" + strings.Join(ids, ":"), nil
}
