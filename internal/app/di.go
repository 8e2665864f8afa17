// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/zkvault/internal/config"
	cryptoService "github.com/allisson/zkvault/internal/crypto/service"
	"github.com/allisson/zkvault/internal/metrics"
	rotationService "github.com/allisson/zkvault/internal/rotation/service"
	rotationUsecase "github.com/allisson/zkvault/internal/rotation/usecase"
	"github.com/allisson/zkvault/internal/session"
	vaultUsecase "github.com/allisson/zkvault/internal/vault/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto services
	aeadManager       cryptoService.AEADManager
	envelopeCipher    *cryptoService.EnvelopeCipher
	hashService       cryptoService.HashService
	keyVerifier       cryptoService.KeyVerifier
	passwordGenerator *cryptoService.PasswordGenerator

	// Session and rotation
	sessionManager    *session.Manager
	rotationScheduler *rotationService.Scheduler
	rotationRunner    *rotationUsecase.Runner

	// Use Cases
	vaultUseCase vaultUsecase.VaultUseCase

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	aeadManagerInit       sync.Once
	envelopeCipherInit    sync.Once
	hashServiceInit       sync.Once
	keyVerifierInit       sync.Once
	passwordGeneratorInit sync.Once
	sessionManagerInit    sync.Once
	rotationSchedulerInit sync.Once
	rotationRunnerInit    sync.Once
	vaultUseCaseInit      sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the metrics provider.
// It fails when metrics are disabled in configuration.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// A no-op recorder is returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// Shutdown performs cleanup of all initialized resources.
// It locks the session, so the root key never outlives the container, and
// writes the final metrics to METRICS_TEXTFILE when configured.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Destroy the root key if a session was created
	if c.sessionManager != nil {
		c.sessionManager.Lock()
	}

	if c.metricsProvider != nil {
		if c.config.MetricsTextfile != "" {
			if err := c.metricsProvider.WriteToTextfile(c.config.MetricsTextfile); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics export: %w", err))
			}
		}
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
// Logs go to stderr so command output on stdout stays machine readable.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initMetricsProvider creates the metrics provider with the configured namespace.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, fmt.Errorf("metrics are disabled")
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder on top of the metrics provider.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}
