// Package service implements the in-memory key rotation schedule.
package service

import (
	"sort"
	"sync"
	"time"

	rotationDomain "github.com/allisson/zkvault/internal/rotation/domain"
)

// Scheduler records when each scope's key falls due for rotation. It keeps at
// most one entry per scope and is safe for concurrent use.
type Scheduler struct {
	mu       sync.RWMutex
	entries  map[string]rotationDomain.Entry
	interval time.Duration
	now      func() time.Time
}

// NewScheduler creates a Scheduler. A non-positive interval uses DefaultInterval.
func NewScheduler(interval time.Duration) *Scheduler {
	return NewSchedulerWithClock(interval, time.Now)
}

// NewSchedulerWithClock creates a Scheduler that reads the time from now.
func NewSchedulerWithClock(interval time.Duration, now func() time.Time) *Scheduler {
	if interval <= 0 {
		interval = rotationDomain.DefaultInterval
	}
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		entries:  make(map[string]rotationDomain.Entry),
		interval: interval,
		now:      now,
	}
}

// ScheduleRotation sets the scope's rotation due one interval from now,
// replacing any existing entry for the scope.
func (s *Scheduler) ScheduleRotation(scope, keyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[scope] = rotationDomain.Entry{
		Scope: scope,
		KeyID: keyID,
		DueAt: s.now().Add(s.interval),
	}
}

// ScheduleRotationAt sets the scope's rotation due one interval after sealedAt,
// replacing any existing entry for the scope. It rebuilds the schedule of an
// object sealed by an earlier process.
func (s *Scheduler) ScheduleRotationAt(scope, keyID string, sealedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[scope] = rotationDomain.Entry{
		Scope: scope,
		KeyID: keyID,
		DueAt: sealedAt.Add(s.interval),
	}
}

// GetPendingRotations returns the entries due now, ordered by due date then scope.
func (s *Scheduler) GetPendingRotations() []rotationDomain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	pending := make([]rotationDomain.Entry, 0)
	for _, entry := range s.entries {
		if entry.IsDue(now) {
			pending = append(pending, entry)
		}
	}
	sortEntries(pending)
	return pending
}

// Rotate clears the scope's entry.
// Returns ErrRotationNotScheduled if the scope has no entry.
func (s *Scheduler) Rotate(scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[scope]; !ok {
		return rotationDomain.ErrRotationNotScheduled
	}
	delete(s.entries, scope)
	return nil
}

// Requeue puts back an entry claimed with Rotate whose rotation failed. It is a
// no-op when the scope was scheduled again in the meantime.
func (s *Scheduler) Requeue(entry rotationDomain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.Scope]; ok {
		return
	}
	s.entries[entry.Scope] = entry
}

// Entries returns a snapshot of every entry, ordered like GetPendingRotations.
func (s *Scheduler) Entries() []rotationDomain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]rotationDomain.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		all = append(all, entry)
	}
	sortEntries(all)
	return all
}

// Len returns the number of scheduled scopes.
func (s *Scheduler) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func sortEntries(entries []rotationDomain.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].DueAt.Equal(entries[j].DueAt) {
			return entries[i].DueAt.Before(entries[j].DueAt)
		}
		return entries[i].Scope < entries[j].Scope
	})
}
