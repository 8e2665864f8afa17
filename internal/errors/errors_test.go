package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customError struct {
	Msg string
}

func (e customError) Error() string { return e.Msg }

func TestNew(t *testing.T) {
	err := New("test error")
	require.Error(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(ErrInvalidInput, "decryption failed")
		require.Error(t, wrapped)
		assert.Equal(t, "decryption failed: invalid input", wrapped.Error())
		assert.True(t, Is(wrapped, ErrInvalidInput))
	})

	t.Run("wrap nil error", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "wrapped"))
	})

	t.Run("nested wraps keep every kind in the chain", func(t *testing.T) {
		inner := Wrap(ErrInvalidInput, "authentication failed")
		outer := Wrap(inner, "malformed payload")
		assert.True(t, Is(outer, inner))
		assert.True(t, Is(outer, ErrInvalidInput))
		assert.False(t, Is(outer, ErrNotFound))
	})
}

func TestAs(t *testing.T) {
	err := Wrap(customError{Msg: "boom"}, "context")

	var target customError
	require.True(t, As(err, &target))
	assert.Equal(t, "boom", target.Msg)
}

func TestBaseKindsAreDistinct(t *testing.T) {
	kinds := []error{ErrNotFound, ErrInvalidInput, ErrUnauthorized, ErrForbidden}
	for i, a := range kinds {
		for j, b := range kinds {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
