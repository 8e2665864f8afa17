package domain

import (
	"github.com/allisson/zkvault/internal/errors"
)

// Vault-specific error definitions.
var (
	// ErrMissingObject indicates a nil record or sealed object was passed in.
	ErrMissingObject = errors.Wrap(errors.ErrInvalidInput, "record or sealed object is missing")
)
