package domain

import (
	"github.com/allisson/zkvault/internal/errors"
)

// Rotation-specific error definitions.
var (
	// ErrRotationNotScheduled indicates no entry exists for the scope, usually because
	// it was already rotated.
	ErrRotationNotScheduled = errors.Wrap(errors.ErrNotFound, "rotation not scheduled")
)
