package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rotationDomain "github.com/allisson/zkvault/internal/rotation/domain"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNewScheduler(t *testing.T) {
	s := NewScheduler(0)
	assert.Equal(t, rotationDomain.DefaultInterval, s.interval)
	assert.Equal(t, 0, s.Len())
}

func TestScheduler_ScheduleRotation(t *testing.T) {
	clock := newFakeClock()
	s := NewSchedulerWithClock(24*time.Hour, clock.Now)

	s.ScheduleRotation("vault:v1", "key-1")
	require.Equal(t, 1, s.Len())

	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "vault:v1", entries[0].Scope)
	assert.Equal(t, "key-1", entries[0].KeyID)
	assert.Equal(t, clock.Now().Add(24*time.Hour), entries[0].DueAt)

	t.Run("rescheduling overwrites the scope", func(t *testing.T) {
		clock.Advance(time.Hour)
		s.ScheduleRotation("vault:v1", "key-2")

		entries := s.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "key-2", entries[0].KeyID)
		assert.Equal(t, clock.Now().Add(24*time.Hour), entries[0].DueAt)
	})
}

func TestScheduler_ScheduleRotationAt(t *testing.T) {
	clock := newFakeClock()
	s := NewSchedulerWithClock(24*time.Hour, clock.Now)

	s.ScheduleRotationAt("password:v1:p1", "key-1", clock.Now().Add(-25*time.Hour))
	s.ScheduleRotationAt("password:v1:p2", "key-2", clock.Now().Add(-time.Hour))

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, clock.Now().Add(-time.Hour), entries[0].DueAt)

	pending := s.GetPendingRotations()
	require.Len(t, pending, 1)
	assert.Equal(t, "password:v1:p1", pending[0].Scope)

	s.ScheduleRotation("password:v1:p1", "key-3")
	assert.Empty(t, s.GetPendingRotations())
}

func TestScheduler_GetPendingRotations(t *testing.T) {
	clock := newFakeClock()
	s := NewSchedulerWithClock(30*24*time.Hour, clock.Now)

	s.ScheduleRotation("password:v1:p2", "k2")
	s.ScheduleRotation("password:v1:p1", "k1")
	clock.Advance(time.Hour)
	s.ScheduleRotation("vault:v1", "k3")

	t.Run("nothing due before the interval", func(t *testing.T) {
		assert.Empty(t, s.GetPendingRotations())
	})

	t.Run("due entries ordered by due date then scope", func(t *testing.T) {
		clock.Advance(30*24*time.Hour - time.Hour)

		pending := s.GetPendingRotations()
		require.Len(t, pending, 2)
		assert.Equal(t, "password:v1:p1", pending[0].Scope)
		assert.Equal(t, "password:v1:p2", pending[1].Scope)

		clock.Advance(time.Hour)
		pending = s.GetPendingRotations()
		require.Len(t, pending, 3)
		assert.Equal(t, "vault:v1", pending[2].Scope)
	})

	t.Run("read only", func(t *testing.T) {
		assert.Len(t, s.GetPendingRotations(), 3)
		assert.Equal(t, 3, s.Len())
	})
}

func TestScheduler_Rotate(t *testing.T) {
	clock := newFakeClock()
	s := NewSchedulerWithClock(time.Hour, clock.Now)
	s.ScheduleRotation("api:k1", "key")

	require.NoError(t, s.Rotate("api:k1"))
	assert.Equal(t, 0, s.Len())

	err := s.Rotate("api:k1")
	assert.ErrorIs(t, err, rotationDomain.ErrRotationNotScheduled)

	assert.ErrorIs(t, s.Rotate("api:unknown"), rotationDomain.ErrRotationNotScheduled)
}

func TestScheduler_Requeue(t *testing.T) {
	clock := newFakeClock()
	s := NewSchedulerWithClock(time.Hour, clock.Now)
	s.ScheduleRotation("note:v1:n1", "old")
	clock.Advance(2 * time.Hour)

	entry := s.GetPendingRotations()[0]
	require.NoError(t, s.Rotate(entry.Scope))

	t.Run("restores the claimed entry", func(t *testing.T) {
		s.Requeue(entry)
		pending := s.GetPendingRotations()
		require.Len(t, pending, 1)
		assert.Equal(t, entry, pending[0])
	})

	t.Run("does not override a newer schedule", func(t *testing.T) {
		require.NoError(t, s.Rotate(entry.Scope))
		s.ScheduleRotation(entry.Scope, "new")
		s.Requeue(entry)

		entries := s.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "new", entries[0].KeyID)
		assert.Empty(t, s.GetPendingRotations())
	})
}

func TestScheduler_Concurrent(t *testing.T) {
	s := NewScheduler(time.Hour)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scope := fmt.Sprintf("vault:v%d", i)
			for range 100 {
				s.ScheduleRotation(scope, "k")
				_ = s.GetPendingRotations()
				_ = s.Entries()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, s.Len())
}
