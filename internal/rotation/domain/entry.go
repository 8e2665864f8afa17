// Package domain defines key rotation bookkeeping types.
//
// Rotation tracks scopes, not keys: a scope is the derivation context of one
// object and KeyID only records which key sealed it. Nothing here allows the key
// to be recovered.
package domain

import "time"

// DefaultInterval is the time between a key being used and its rotation falling due.
const DefaultInterval = 30 * 24 * time.Hour

// Entry is the rotation schedule of one scope.
type Entry struct {
	Scope string    `json:"scope"`
	KeyID string    `json:"keyId"`
	DueAt time.Time `json:"dueAt"`
}

// IsDue reports whether the entry is due at now.
func (e Entry) IsDue(now time.Time) bool {
	return !e.DueAt.After(now)
}

// RunResult summarizes one pass of the rotation runner.
type RunResult struct {
	// Rotated counts entries whose objects were resealed.
	Rotated int `json:"rotated"`
	// Failed counts entries put back as pending after a handler error.
	Failed int `json:"failed"`
	// Skipped counts entries cleared by someone else or not attempted because the context ended.
	Skipped int `json:"skipped"`
}
