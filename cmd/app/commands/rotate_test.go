package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/zkvault/internal/metrics"
	rotationDomain "github.com/allisson/zkvault/internal/rotation/domain"
	rotationService "github.com/allisson/zkvault/internal/rotation/service"
	rotationUsecase "github.com/allisson/zkvault/internal/rotation/usecase"
	vaultDomain "github.com/allisson/zkvault/internal/vault/domain"
	vaultMocks "github.com/allisson/zkvault/internal/vault/usecase/mocks"
)

type rotateFixture struct {
	now       time.Time
	scheduler *rotationService.Scheduler
	runner    *rotationUsecase.Runner
	due       *vaultDomain.SealedPassword
	fresh     *vaultDomain.SealedPassword
	duePath   string
	freshPath string
}

func newRotateFixture(t *testing.T) *rotateFixture {
	t.Helper()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	scheduler := rotationService.NewSchedulerWithClock(
		rotationDomain.DefaultInterval,
		func() time.Time { return now },
	)

	due := sealedPassword()
	fresh := sealedPassword()
	fresh.PasswordID = "0190a2f4-0000-7000-8000-000000000002"
	fresh.Timestamp = now.Add(-24 * time.Hour).UnixMilli()

	return &rotateFixture{
		now:       now,
		scheduler: scheduler,
		runner:    rotationUsecase.NewRunner(rotationUsecase.Config{Concurrency: 2}, scheduler, nil),
		due:       due,
		fresh:     fresh,
		duePath:   writeJSONFixture(t, "due.json", due),
		freshPath: writeJSONFixture(t, "fresh.json", fresh),
	}
}

func (f *rotateFixture) run(
	ctx context.Context,
	session Session,
	useCase *vaultMocks.MockVaultUseCase,
	out *bytes.Buffer,
	paramsPath string,
	paths []string,
	format string,
) error {
	return RunRotatePasswords(
		ctx,
		session,
		useCase,
		f.scheduler,
		f.runner,
		metrics.NewNoOpBusinessMetrics(),
		slog.Default(),
		out,
		testPassphrase,
		paramsPath,
		paths,
		format,
	)
}

func readSealedFile(t *testing.T, path string) *vaultDomain.SealedPassword {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test fixture
	require.NoError(t, err)
	var sealed vaultDomain.SealedPassword
	require.NoError(t, json.Unmarshal(data, &sealed))
	return &sealed
}

func matchPassword(id string) interface{} {
	return mock.MatchedBy(func(sealed *vaultDomain.SealedPassword) bool {
		return sealed.PasswordID == id
	})
}

func TestRunRotatePasswords(t *testing.T) {
	ctx := context.Background()

	t.Run("success-reseals-due-files-in-place", func(t *testing.T) {
		f := newRotateFixture(t)
		params := testParams(t)
		paramsPath := writeJSONFixture(t, "params.json", params)

		resealed := sealedPassword()
		resealed.KeyVersion = 1
		resealed.KeyID = "cd" + resealed.KeyID[2:]
		resealed.Timestamp = f.now.UnixMilli()

		session := &mockSession{}
		session.On("Unlock", testPassphrase, params).Return(nil)
		session.On("Lock").Return()
		useCase := &vaultMocks.MockVaultUseCase{}
		useCase.On("ReencryptPassword", mock.Anything, matchPassword(f.due.PasswordID)).
			Run(func(mock.Arguments) {
				// Reencrypt schedules the resealed object again.
				f.scheduler.ScheduleRotation("password:vault1:"+resealed.PasswordID, resealed.KeyID)
			}).
			Return(resealed, nil).
			Once()

		var out bytes.Buffer
		err := f.run(ctx, session, useCase, &out, paramsPath, []string{f.duePath, f.freshPath}, "text")
		require.NoError(t, err)

		assert.Contains(t, out.String(), "Rotated: 1\n")
		assert.Contains(t, out.String(), "Failed: 0\n")
		assert.Contains(t, out.String(), f.freshPath+" due 2026-01-30T00:00:00Z")
		assert.Contains(t, out.String(), f.duePath+" due 2026-01-31T00:00:00Z")

		assert.Equal(t, resealed, readSealedFile(t, f.duePath))
		assert.Equal(t, f.fresh, readSealedFile(t, f.freshPath))
		session.AssertExpectations(t)
		useCase.AssertExpectations(t)
	})

	t.Run("json-format", func(t *testing.T) {
		f := newRotateFixture(t)
		params := testParams(t)
		paramsPath := writeJSONFixture(t, "params.json", params)

		session := &mockSession{}
		session.On("Unlock", testPassphrase, params).Return(nil)
		session.On("Lock").Return()
		useCase := &vaultMocks.MockVaultUseCase{}

		var out bytes.Buffer
		err := f.run(ctx, session, useCase, &out, paramsPath, []string{f.freshPath}, "json")
		require.NoError(t, err)

		var report rotationReport
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, rotationDomain.RunResult{}, report.Result)
		require.Len(t, report.Schedule, 1)
		assert.Equal(t, f.fresh.KeyID, report.Schedule[0].KeyID)
		useCase.AssertNotCalled(t, "ReencryptPassword", mock.Anything, mock.Anything)
	})

	t.Run("failed-rotation-keeps-file", func(t *testing.T) {
		f := newRotateFixture(t)
		params := testParams(t)
		paramsPath := writeJSONFixture(t, "params.json", params)

		session := &mockSession{}
		session.On("Unlock", testPassphrase, params).Return(nil)
		session.On("Lock").Return()
		useCase := &vaultMocks.MockVaultUseCase{}
		useCase.On("ReencryptPassword", mock.Anything, matchPassword(f.due.PasswordID)).
			Return(nil, errors.New("authentication failed"))

		var out bytes.Buffer
		err := f.run(ctx, session, useCase, &out, paramsPath, []string{f.duePath}, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to rotate 1 of 1 passwords")
		assert.Contains(t, out.String(), "Failed: 1\n")
		assert.Equal(t, f.due, readSealedFile(t, f.duePath))
		assert.Len(t, f.scheduler.GetPendingRotations(), 1)
	})

	t.Run("duplicate-files", func(t *testing.T) {
		f := newRotateFixture(t)
		copyPath := filepath.Join(t.TempDir(), "copy.json")
		data, err := os.ReadFile(f.duePath) //nolint:gosec // test fixture
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(copyPath, data, 0o600))

		session := &mockSession{}
		var out bytes.Buffer
		paths := []string{f.duePath, copyPath}
		err = f.run(ctx, session, &vaultMocks.MockVaultUseCase{}, &out, "unused.json", paths, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hold the same password")
		session.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything)
	})

	t.Run("invalid-format", func(t *testing.T) {
		f := newRotateFixture(t)
		var out bytes.Buffer
		paths := []string{f.duePath}
		err := f.run(ctx, &mockSession{}, &vaultMocks.MockVaultUseCase{}, &out, "unused.json", paths, "yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}
