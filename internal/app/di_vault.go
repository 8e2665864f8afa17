package app

import (
	"fmt"

	rotationService "github.com/allisson/zkvault/internal/rotation/service"
	rotationUsecase "github.com/allisson/zkvault/internal/rotation/usecase"
	vaultUsecase "github.com/allisson/zkvault/internal/vault/usecase"
)

// RotationScheduler returns the key rotation scheduler.
func (c *Container) RotationScheduler() *rotationService.Scheduler {
	c.rotationSchedulerInit.Do(func() {
		c.rotationScheduler = rotationService.NewScheduler(c.config.RotationInterval)
	})
	return c.rotationScheduler
}

// RotationRunner returns the rotation runner bound to the rotation scheduler.
func (c *Container) RotationRunner() *rotationUsecase.Runner {
	c.rotationRunnerInit.Do(func() {
		c.rotationRunner = c.initRotationRunner()
	})
	return c.rotationRunner
}

// VaultUseCase returns the vault use case instance.
func (c *Container) VaultUseCase() (vaultUsecase.VaultUseCase, error) {
	var err error
	c.vaultUseCaseInit.Do(func() {
		c.vaultUseCase, err = c.initVaultUseCase()
		if err != nil {
			c.initErrors["vaultUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultUseCase"]; exists {
		return nil, storedErr
	}
	return c.vaultUseCase, nil
}

// initRotationRunner creates the rotation runner.
func (c *Container) initRotationRunner() *rotationUsecase.Runner {
	runnerConfig := rotationUsecase.Config{
		Concurrency: c.config.RotationConcurrency,
	}
	return rotationUsecase.NewRunner(runnerConfig, c.RotationScheduler(), c.Logger())
}

// initVaultUseCase creates the vault use case with all its dependencies.
func (c *Container) initVaultUseCase() (vaultUsecase.VaultUseCase, error) {
	envelopeCipher, err := c.EnvelopeCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get envelope cipher for vault use case: %w", err)
	}

	baseUseCase := vaultUsecase.NewVaultUseCase(
		c.SessionManager(),
		envelopeCipher,
		c.HashService(),
		c.RotationScheduler(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
		}
		return vaultUsecase.NewVaultUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
