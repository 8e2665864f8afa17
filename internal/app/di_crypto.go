package app

import (
	"fmt"

	cryptoService "github.com/allisson/zkvault/internal/crypto/service"
	"github.com/allisson/zkvault/internal/session"
)

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = c.initAEADManager()
	})
	return c.aeadManager
}

// EnvelopeCipher returns the envelope cipher sealing with ENCRYPTION_ALGORITHM.
func (c *Container) EnvelopeCipher() (*cryptoService.EnvelopeCipher, error) {
	var err error
	c.envelopeCipherInit.Do(func() {
		c.envelopeCipher, err = c.initEnvelopeCipher()
		if err != nil {
			c.initErrors["envelopeCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelopeCipher"]; exists {
		return nil, storedErr
	}
	return c.envelopeCipher, nil
}

// HashService returns the hash service.
func (c *Container) HashService() cryptoService.HashService {
	c.hashServiceInit.Do(func() {
		c.hashService = cryptoService.NewSHA256HashService()
	})
	return c.hashService
}

// KeyVerifier returns the key-check verifier.
func (c *Container) KeyVerifier() cryptoService.KeyVerifier {
	c.keyVerifierInit.Do(func() {
		c.keyVerifier = cryptoService.NewKeyVerifier()
	})
	return c.keyVerifier
}

// PasswordGenerator returns the password generator.
func (c *Container) PasswordGenerator() *cryptoService.PasswordGenerator {
	c.passwordGeneratorInit.Do(func() {
		c.passwordGenerator = cryptoService.NewPasswordGenerator()
	})
	return c.passwordGenerator
}

// SessionManager returns the session manager. It starts locked.
func (c *Container) SessionManager() *session.Manager {
	c.sessionManagerInit.Do(func() {
		c.sessionManager = c.initSessionManager()
	})
	return c.sessionManager
}

// initAEADManager creates the AEAD manager service.
func (c *Container) initAEADManager() cryptoService.AEADManager {
	return cryptoService.NewAEADManager()
}

// initEnvelopeCipher creates the envelope cipher using the AEAD manager.
func (c *Container) initEnvelopeCipher() (*cryptoService.EnvelopeCipher, error) {
	algorithm, err := c.config.Algorithm()
	if err != nil {
		return nil, fmt.Errorf("failed to parse encryption algorithm: %w", err)
	}
	return cryptoService.NewEnvelopeCipher(c.AEADManager(), algorithm), nil
}

// initSessionManager creates the session manager with the configured derivation
// cost and unlock throttling.
func (c *Container) initSessionManager() *session.Manager {
	sessionConfig := session.Config{
		Iterations:      c.config.KDFIterations,
		ArgonTime:       uint32(c.config.ArgonTime),
		ArgonMemory:     uint32(c.config.ArgonMemoryKiB),
		ArgonThreads:    uint8(c.config.ArgonThreads),
		MaxAttempts:     c.config.UnlockMaxAttempts,
		LockoutDuration: c.config.UnlockLockoutDuration,
		Passphrase:      c.config.PassphraseStrength(),
	}

	return session.NewManager(
		sessionConfig,
		cryptoService.HostFingerprint(c.config.DeviceFingerprint),
		c.KeyVerifier(),
		c.Logger(),
	)
}
