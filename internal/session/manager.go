// Package session manages the lifecycle of the master secret: unlocking derives
// the root key from the passphrase, locking destroys it.
package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
	cryptoService "github.com/allisson/zkvault/internal/crypto/service"
	apperrors "github.com/allisson/zkvault/internal/errors"
	customValidation "github.com/allisson/zkvault/internal/validation"
)

// ErrTooManyAttempts indicates unlocking is throttled after repeated failures.
var ErrTooManyAttempts = apperrors.Wrap(apperrors.ErrForbidden, "too many unlock attempts")

// Config holds the derivation cost used at enrollment and the unlock throttling policy.
type Config struct {
	Iterations      int
	ArgonTime       uint32
	ArgonMemory     uint32
	ArgonThreads    uint8
	MaxAttempts     int
	LockoutDuration time.Duration
	// Passphrase is the strength policy applied when enrolling.
	Passphrase customValidation.PassphraseStrength
}

// Manager owns the KeyDerivationEngine and moves it between the locked and
// unlocked states. It is safe for concurrent use.
//
// Candidate root keys are derived in a scratch engine and only moved into the
// live one once accepted, so a failed Enroll or Unlock leaves the current state
// as it was.
type Manager struct {
	mu          sync.Mutex
	engine      *cryptoService.KeyDerivationEngine
	fingerprint cryptoService.DeviceFingerprint
	verifier    cryptoService.KeyVerifier
	limiter  *rate.Limiter
	config   Config
	logger   *slog.Logger
}

// NewManager creates a locked Manager with its own engine.
func NewManager(
	config Config,
	fingerprint cryptoService.DeviceFingerprint,
	verifier cryptoService.KeyVerifier,
	logger *slog.Logger,
) *Manager {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	if config.LockoutDuration <= 0 {
		config.LockoutDuration = 15 * time.Minute
	}
	every := config.LockoutDuration / time.Duration(config.MaxAttempts)

	return &Manager{
		engine:      cryptoService.NewKeyDerivationEngine(fingerprint),
		fingerprint: fingerprint,
		verifier:    verifier,
		limiter:     rate.NewLimiter(rate.Every(every), config.MaxAttempts),
		config:      config,
		logger:      logger,
	}
}

// Enroll creates fresh KeyParams for passphrase, unlocks with them and stores a
// verifier so later unlocks can reject a wrong passphrase. The caller persists
// the returned params.
func (m *Manager) Enroll(passphrase string) (cryptoDomain.KeyParams, error) {
	if err := m.config.Passphrase.Validate(passphrase); err != nil {
		return cryptoDomain.KeyParams{}, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyDerivation, err)
	}

	params, err := cryptoDomain.NewKeyParams(
		m.config.Iterations,
		m.config.ArgonTime,
		m.config.ArgonMemory,
		m.config.ArgonThreads,
	)
	if err != nil {
		return cryptoDomain.KeyParams{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	candidate := cryptoService.NewKeyDerivationEngine(m.fingerprint)
	defer candidate.Clear()

	if err := candidate.SetMasterKey(passphrase, params); err != nil {
		return cryptoDomain.KeyParams{}, err
	}

	check, err := candidate.DeriveScopedKey(cryptoService.KeyCheckContext)
	if err != nil {
		return cryptoDomain.KeyParams{}, err
	}
	defer check.Destroy()

	verifier, err := m.verifier.Hash(check.Key)
	if err != nil {
		return cryptoDomain.KeyParams{}, err
	}
	params.Verifier = verifier
	m.engine.TakeMasterKey(candidate)

	m.logInfo("session enrolled", slog.Int("iterations", params.Iterations))
	return params, nil
}

// Unlock derives the root key from passphrase and params.
//
// When params carries a verifier, a mismatching passphrase returns
// ErrInvalidPassphrase. A rejected attempt does not touch the current root key,
// so an unlocked session stays unlocked. Failed attempts are throttled; once the
// budget is spent Unlock returns ErrTooManyAttempts without deriving anything.
func (m *Manager) Unlock(passphrase string, params cryptoDomain.KeyParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.limiter.Tokens() < 1 {
		m.logWarn("unlock throttled")
		return ErrTooManyAttempts
	}

	candidate := cryptoService.NewKeyDerivationEngine(m.fingerprint)
	defer candidate.Clear()

	if err := candidate.SetMasterKey(passphrase, params); err != nil {
		m.limiter.Allow()
		return err
	}

	if params.Verifier != "" {
		check, err := candidate.DeriveScopedKey(cryptoService.KeyCheckContext)
		if err != nil {
			return err
		}
		ok := m.verifier.Verify(check.Key, params.Verifier)
		check.Destroy()
		if !ok {
			m.limiter.Allow()
			m.logWarn("unlock rejected")
			return cryptoDomain.ErrInvalidPassphrase
		}
	}
	m.engine.TakeMasterKey(candidate)

	m.logInfo("session unlocked")
	return nil
}

// Lock destroys the root key. It is idempotent.
func (m *Manager) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.engine.HasMasterKey() {
		return
	}
	m.engine.Clear()
	m.logInfo("session locked")
}

// IsUnlocked reports whether a root key is present.
func (m *Manager) IsUnlocked() bool {
	return m.engine.HasMasterKey()
}

// DeriveScopedKey derives the key for context. Returns ErrNoMasterKey while locked.
func (m *Manager) DeriveScopedKey(context string) (*cryptoDomain.ScopedKey, error) {
	return m.engine.DeriveScopedKey(context)
}

func (m *Manager) logInfo(msg string, attrs ...any) {
	if m.logger != nil {
		m.logger.Info(msg, attrs...)
	}
}

func (m *Manager) logWarn(msg string, attrs ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, attrs...)
	}
}
