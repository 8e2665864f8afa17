package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/zkvault/internal/crypto/domain"
	apperrors "github.com/allisson/zkvault/internal/errors"
	customValidation "github.com/allisson/zkvault/internal/validation"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "aes-gcm", cfg.EncryptionAlgorithm)
				assert.Equal(t, 100000, cfg.KDFIterations)
				assert.Equal(t, 1, cfg.ArgonTime)
				assert.Equal(t, 65536, cfg.ArgonMemoryKiB)
				assert.Equal(t, 4, cfg.ArgonThreads)
				assert.Empty(t, cfg.DeviceFingerprint)
				assert.Equal(t, customValidation.DefaultPassphraseStrength, cfg.PassphraseStrength())
				assert.Equal(t, 30*24*time.Hour, cfg.RotationInterval)
				assert.Equal(t, 4, cfg.RotationConcurrency)
				assert.Equal(t, 5, cfg.UnlockMaxAttempts)
				assert.Equal(t, 15*time.Minute, cfg.UnlockLockoutDuration)
				assert.False(t, cfg.MetricsEnabled)
				assert.Equal(t, "zkvault", cfg.MetricsNamespace)
				assert.NoError(t, cfg.Validate())
			},
		},
		{
			name: "load custom encryption configuration",
			envVars: map[string]string{
				"ENCRYPTION_ALGORITHM": "chacha20-poly1305",
				"KDF_ITERATIONS":       "600000",
				"ARGON_TIME":           "3",
				"ARGON_MEMORY_KIB":     "131072",
				"ARGON_THREADS":        "2",
				"DEVICE_FINGERPRINT":   "laptop-01",
			},
			validate: func(t *testing.T, cfg *Config) {
				alg, err := cfg.Algorithm()
				require.NoError(t, err)
				assert.Equal(t, cryptoDomain.ChaCha20, alg)
				assert.Equal(t, 600000, cfg.KDFIterations)
				assert.Equal(t, 3, cfg.ArgonTime)
				assert.Equal(t, 131072, cfg.ArgonMemoryKiB)
				assert.Equal(t, 2, cfg.ArgonThreads)
				assert.Equal(t, "laptop-01", cfg.DeviceFingerprint)
			},
		},
		{
			name: "load custom rotation and unlock configuration",
			envVars: map[string]string{
				"ROTATION_INTERVAL_DAYS":          "7",
				"ROTATION_CONCURRENCY":            "8",
				"UNLOCK_MAX_ATTEMPTS":             "3",
				"UNLOCK_LOCKOUT_DURATION_MINUTES": "60",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7*24*time.Hour, cfg.RotationInterval)
				assert.Equal(t, 8, cfg.RotationConcurrency)
				assert.Equal(t, 3, cfg.UnlockMaxAttempts)
				assert.Equal(t, time.Hour, cfg.UnlockLockoutDuration)
			},
		},
		{
			name: "load custom passphrase policy",
			envVars: map[string]string{
				"PASSPHRASE_MIN_LENGTH":        "16",
				"PASSPHRASE_REQUIRE_UPPERCASE": "true",
				"PASSPHRASE_REQUIRE_LOWERCASE": "true",
				"PASSPHRASE_REQUIRE_NUMBER":    "true",
				"PASSPHRASE_REQUIRE_SPECIAL":   "true",
			},
			validate: func(t *testing.T, cfg *Config) {
				strength := cfg.PassphraseStrength()
				assert.Equal(t, 16, strength.MinLength)
				assert.True(t, strength.RequireUpper)
				assert.True(t, strength.RequireLower)
				assert.True(t, strength.RequireNumber)
				assert.True(t, strength.RequireSpecial)

				assert.Error(t, strength.Validate("correct horse battery staple"))
				assert.NoError(t, strength.Validate("Correct horse battery staple 4!"))
			},
		},
		{
			name: "load custom metrics configuration",
			envVars: map[string]string{
				"METRICS_ENABLED":   "true",
				"METRICS_NAMESPACE": "vault",
				"METRICS_TEXTFILE":  "/var/lib/node_exporter/zkvault.prom",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "vault", cfg.MetricsNamespace)
				assert.Equal(t, "/var/lib/node_exporter/zkvault.prom", cfg.MetricsTextfile)
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for key, value := range tt.envVars {
				err := os.Setenv(key, value)
				require.NoError(t, err)
			}

			// Load configuration
			cfg := Load()

			// Validate
			tt.validate(t, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LogLevel:              "info",
			EncryptionAlgorithm:   "aes-gcm",
			KDFIterations:         100000,
			ArgonTime:             1,
			ArgonMemoryKiB:        65536,
			ArgonThreads:          4,
			PassphraseMinLength:   12,
			RotationInterval:      30 * 24 * time.Hour,
			RotationConcurrency:   4,
			UnlockMaxAttempts:     5,
			UnlockLockoutDuration: 15 * time.Minute,
			MetricsNamespace:      "zkvault",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown algorithm", mutate: func(c *Config) { c.EncryptionAlgorithm = "des" }, wantErr: true},
		{name: "weak iterations", mutate: func(c *Config) { c.KDFIterations = 1000 }, wantErr: true},
		{name: "zero argon threads", mutate: func(c *Config) { c.ArgonThreads = 0 }, wantErr: true},
		{name: "too many argon threads", mutate: func(c *Config) { c.ArgonThreads = 256 }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: true},
		{name: "short passphrase policy", mutate: func(c *Config) { c.PassphraseMinLength = 4 }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.RotationConcurrency = 0 }, wantErr: true},
		{name: "fingerprint with padding", mutate: func(c *Config) { c.DeviceFingerprint = " laptop" }, wantErr: true},
		{
			name: "metrics without namespace",
			mutate: func(c *Config) {
				c.MetricsEnabled = true
				c.MetricsNamespace = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}
