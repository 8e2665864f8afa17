package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

type sha256HashService struct{}

// NewSHA256HashService creates a new SHA-256 hash service.
func NewSHA256HashService() HashService {
	return &sha256HashService{}
}

// Hash computes the SHA-256 hash of the input value and returns it as a hex string.
func (s *sha256HashService) Hash(value []byte) string {
	hash := sha256.Sum256(value)
	return hex.EncodeToString(hash[:])
}

// Equal reports whether value hashes to hashed, comparing in constant time.
func (s *sha256HashService) Equal(value []byte, hashed string) bool {
	computed := s.Hash(value)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hashed)) == 1
}
