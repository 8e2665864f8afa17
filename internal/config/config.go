// Package config provides application configuration through environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
	customValidation "github.com/allisson/zkvault/internal/validation"
)

// Config holds all application configuration.
type Config struct {
	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// EncryptionAlgorithm is the AEAD used for new envelopes ("aes-gcm" or "chacha20-poly1305").
	EncryptionAlgorithm string

	// KDFIterations is the PBKDF2-SHA256 iteration count used at enrollment.
	KDFIterations int
	// ArgonTime is the Argon2id pass count used at enrollment.
	ArgonTime int
	// ArgonMemoryKiB is the Argon2id memory cost in KiB used at enrollment.
	ArgonMemoryKiB int
	// ArgonThreads is the Argon2id parallelism used at enrollment.
	ArgonThreads int
	// DeviceFingerprint overrides the hostname-based device fingerprint mixed into the root key.
	DeviceFingerprint string

	// PassphraseMinLength is the minimum number of characters of a new master passphrase.
	PassphraseMinLength int
	// PassphraseRequireUppercase requires an uppercase letter in a new master passphrase.
	PassphraseRequireUppercase bool
	// PassphraseRequireLowercase requires a lowercase letter in a new master passphrase.
	PassphraseRequireLowercase bool
	// PassphraseRequireNumber requires a digit in a new master passphrase.
	PassphraseRequireNumber bool
	// PassphraseRequireSpecial requires a punctuation or symbol character in a new master passphrase.
	PassphraseRequireSpecial bool

	// RotationInterval is the time after sealing at which an object's key is due for rotation.
	RotationInterval time.Duration
	// RotationConcurrency is the number of objects resealed in parallel by the rotation runner.
	RotationConcurrency int

	// UnlockMaxAttempts is the number of failed unlocks allowed before throttling.
	UnlockMaxAttempts int
	// UnlockLockoutDuration is the time needed to regain every unlock attempt.
	UnlockLockoutDuration time.Duration

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsTextfile is the file metrics are written to on shutdown, for a textfile collector.
	MetricsTextfile string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Encryption
		EncryptionAlgorithm: env.GetString("ENCRYPTION_ALGORITHM", "aes-gcm"),

		// Key derivation
		KDFIterations:     env.GetInt("KDF_ITERATIONS", cryptoDomain.MinKDFIterations),
		ArgonTime:         env.GetInt("ARGON_TIME", 1),
		ArgonMemoryKiB:    env.GetInt("ARGON_MEMORY_KIB", 64*1024),
		ArgonThreads:      env.GetInt("ARGON_THREADS", 4),
		DeviceFingerprint: env.GetString("DEVICE_FINGERPRINT", ""),

		// Passphrase policy, applied at enrollment
		PassphraseMinLength: env.GetInt(
			"PASSPHRASE_MIN_LENGTH",
			customValidation.DefaultPassphraseStrength.MinLength,
		),
		PassphraseRequireUppercase: env.GetBool("PASSPHRASE_REQUIRE_UPPERCASE", false),
		PassphraseRequireLowercase: env.GetBool("PASSPHRASE_REQUIRE_LOWERCASE", false),
		PassphraseRequireNumber:    env.GetBool("PASSPHRASE_REQUIRE_NUMBER", false),
		PassphraseRequireSpecial:   env.GetBool("PASSPHRASE_REQUIRE_SPECIAL", false),

		// Key rotation
		RotationInterval:    env.GetDuration("ROTATION_INTERVAL_DAYS", 30, 24*time.Hour),
		RotationConcurrency: env.GetInt("ROTATION_CONCURRENCY", 4),

		// Unlock throttling
		UnlockMaxAttempts:     env.GetInt("UNLOCK_MAX_ATTEMPTS", 5),
		UnlockLockoutDuration: env.GetDuration("UNLOCK_LOCKOUT_DURATION_MINUTES", 15, time.Minute),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "zkvault"),
		MetricsTextfile:  env.GetString("METRICS_TEXTFILE", ""),
	}
}

// Validate checks the configuration before any key is derived with it.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.EncryptionAlgorithm, validation.Required, validation.By(func(value interface{}) error {
			_, err := cryptoDomain.ParseAlgorithm(value.(string))
			return err
		})),
		validation.Field(&c.KDFIterations, validation.Min(cryptoDomain.MinKDFIterations)),
		validation.Field(&c.ArgonTime, validation.Required, validation.Min(1)),
		validation.Field(&c.ArgonMemoryKiB, validation.Required, validation.Min(8)),
		validation.Field(&c.ArgonThreads, validation.Required, validation.Min(1), validation.Max(255)),
		validation.Field(&c.DeviceFingerprint, customValidation.NoWhitespace),
		validation.Field(&c.PassphraseMinLength, validation.Required, validation.Min(8)),
		validation.Field(&c.RotationInterval, validation.Required, validation.Min(time.Hour)),
		validation.Field(&c.RotationConcurrency, validation.Required, validation.Min(1)),
		validation.Field(&c.UnlockMaxAttempts, validation.Required, validation.Min(1)),
		validation.Field(&c.UnlockLockoutDuration, validation.Required),
		validation.Field(&c.MetricsNamespace, validation.When(c.MetricsEnabled, validation.Required)),
	)
	if err != nil {
		return customValidation.WrapValidationError(fmt.Errorf("invalid configuration: %w", err))
	}
	return nil
}

// Algorithm returns the configured AEAD algorithm.
func (c *Config) Algorithm() (cryptoDomain.Algorithm, error) {
	return cryptoDomain.ParseAlgorithm(c.EncryptionAlgorithm)
}

// PassphraseStrength returns the policy a new master passphrase must meet.
func (c *Config) PassphraseStrength() customValidation.PassphraseStrength {
	return customValidation.PassphraseStrength{
		MinLength:      c.PassphraseMinLength,
		RequireUpper:   c.PassphraseRequireUppercase,
		RequireLower:   c.PassphraseRequireLowercase,
		RequireNumber:  c.PassphraseRequireNumber,
		RequireSpecial: c.PassphraseRequireSpecial,
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
