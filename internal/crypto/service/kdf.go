package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
)

// KeyDerivationEngine turns a master passphrase into a root key and derives
// scoped keys from it.
//
// The root key lives in a memguard LockedBuffer: mlocked, guarded and frozen
// read-only. Derivation takes the read lock for the whole HMAC computation and
// SetMasterKey/Clear take the write lock, so a derivation never observes a
// half-replaced or half-wiped root key.
type KeyDerivationEngine struct {
	mu          sync.RWMutex
	root        *memguard.LockedBuffer
	fingerprint DeviceFingerprint
}

// NewKeyDerivationEngine creates an engine with no root key set.
func NewKeyDerivationEngine(fingerprint DeviceFingerprint) *KeyDerivationEngine {
	return &KeyDerivationEngine{fingerprint: fingerprint}
}

// SetMasterKey derives the root key and replaces any existing one:
//
//	h1      = Argon2id(passphrase, salt)
//	entropy = SHA-256(device fingerprint)
//	root    = PBKDF2-SHA256(h1 || entropy, salt, iterations, 32)
//
// All intermediates are zeroed before returning.
func (e *KeyDerivationEngine) SetMasterKey(passphrase string, params cryptoDomain.KeyParams) error {
	if passphrase == "" {
		return fmt.Errorf("%w: passphrase is empty", cryptoDomain.ErrKeyDerivation)
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if e.fingerprint == nil {
		return fmt.Errorf("%w: no device fingerprint source", cryptoDomain.ErrKeyDerivation)
	}
	device, err := e.fingerprint()
	if err != nil {
		return fmt.Errorf("%w: %v", cryptoDomain.ErrKeyDerivation, err)
	}

	pass := []byte(passphrase)
	defer cryptoDomain.Zero(pass)

	slow := argon2.IDKey(
		pass,
		params.Salt,
		params.ArgonTime,
		params.ArgonMemory,
		params.ArgonThreads,
		cryptoDomain.KeySize,
	)
	defer cryptoDomain.Zero(slow)

	entropy := sha256.Sum256([]byte(device))
	defer cryptoDomain.Zero(entropy[:])

	material := make([]byte, 0, len(slow)+len(entropy))
	material = append(material, slow...)
	material = append(material, entropy[:]...)
	defer cryptoDomain.Zero(material)

	rootKey := pbkdf2.Key(material, params.Salt, params.Iterations, cryptoDomain.KeySize, sha256.New)
	if len(rootKey) != cryptoDomain.KeySize {
		cryptoDomain.Zero(rootKey)
		return fmt.Errorf("%w: unexpected root key size", cryptoDomain.ErrKeyDerivation)
	}

	// NewBufferFromBytes wipes rootKey after copying it into protected memory.
	buf := memguard.NewBufferFromBytes(rootKey)
	buf.Freeze()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.root != nil {
		e.root.Destroy()
	}
	e.root = buf
	return nil
}

// TakeMasterKey moves the root key of other into e, destroying the one e held,
// and leaves other without a key. It does nothing when other has no key.
func (e *KeyDerivationEngine) TakeMasterKey(other *KeyDerivationEngine) {
	if other == nil || other == e {
		return
	}

	other.mu.Lock()
	root := other.root
	other.root = nil
	other.mu.Unlock()
	if root == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.root != nil {
		e.root.Destroy()
	}
	e.root = root
}

// DeriveScopedKey returns HMAC-SHA256(root, context).
func (e *KeyDerivationEngine) DeriveScopedKey(context string) (*cryptoDomain.ScopedKey, error) {
	if context == "" {
		return nil, fmt.Errorf("%w: context is empty", cryptoDomain.ErrInvalidContext)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.root == nil || !e.root.IsAlive() {
		return nil, cryptoDomain.ErrNoMasterKey
	}

	mac := hmac.New(sha256.New, e.root.Bytes())
	mac.Write([]byte(context))
	return &cryptoDomain.ScopedKey{Context: context, Key: mac.Sum(nil)}, nil
}

// HasMasterKey reports whether a root key is currently set.
func (e *KeyDerivationEngine) HasMasterKey() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.root != nil && e.root.IsAlive()
}

// Clear wipes the root key and drops the reference. It is idempotent.
func (e *KeyDerivationEngine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.root != nil {
		e.root.Destroy()
		e.root = nil
	}
}
