package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
)

// AEADManagerService implements the AEADManager interface for creating AEAD cipher instances.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher creates an AEAD cipher instance for the specified algorithm.
// Returns ErrInvalidKeySize if key is not 32 bytes or ErrUnsupportedAlgorithm if algorithm is unknown.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	var (
		aead cipher.AEAD
		err  error
	)
	switch alg {
	case cryptoDomain.AESGCM:
		aead, err = newAESGCM(key)
	case cryptoDomain.ChaCha20:
		aead, err = chacha20poly1305.New(key)
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s cipher: %w", alg, err)
	}
	return &aeadCipher{aead: aead}, nil
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// aeadCipher adapts a cipher.AEAD to the AEAD interface, drawing a random nonce
// for every encryption. Both supported algorithms use 12-byte nonces, which is
// safe for random generation at the volumes a single user's vault produces.
type aeadCipher struct {
	aead cipher.AEAD
}

// Encrypt encrypts plaintext with a fresh random nonce. The tag is appended to the ciphertext.
func (a *aeadCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt verifies the tag and decrypts. No plaintext is returned on failure.
func (a *aeadCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, fmt.Errorf("invalid nonce size %d", len(nonce))
	}
	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
