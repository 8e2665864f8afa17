package service

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256HashService(t *testing.T) {
	hashService := NewSHA256HashService()
	assert.IsType(t, &sha256HashService{}, hashService)

	t.Run("Success_MatchesSHA256", func(t *testing.T) {
		input := []byte("agies_deadbeef")
		expected := sha256.Sum256(input)
		assert.Equal(t, hex.EncodeToString(expected[:]), hashService.Hash(input))
	})

	t.Run("Success_Deterministic", func(t *testing.T) {
		assert.Equal(t, hashService.Hash([]byte("x")), hashService.Hash([]byte("x")))
		assert.Len(t, hashService.Hash([]byte{}), 64)
	})

	t.Run("Equal", func(t *testing.T) {
		hashed := hashService.Hash([]byte("agies_key"))
		assert.True(t, hashService.Equal([]byte("agies_key"), hashed))
		assert.False(t, hashService.Equal([]byte("agies_other"), hashed))
		assert.False(t, hashService.Equal([]byte("agies_key"), ""))
	})
}
