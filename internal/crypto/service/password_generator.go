package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/zkvault/internal/errors"
)

// Character classes for generated passwords.
const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	numberChars = "0123456789"
	symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// PasswordOptions selects the length and character classes of a generated password.
type PasswordOptions struct {
	Length           int
	IncludeUppercase bool
	IncludeLowercase bool
	IncludeNumbers   bool
	IncludeSymbols   bool
}

// DefaultPasswordOptions returns 16 characters drawn from every class.
func DefaultPasswordOptions() PasswordOptions {
	return PasswordOptions{
		Length:           16,
		IncludeUppercase: true,
		IncludeLowercase: true,
		IncludeNumbers:   true,
		IncludeSymbols:   true,
	}
}

// Validate checks the options describe a password that can be generated.
func (o *PasswordOptions) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.Length, validation.Required, validation.Min(4), validation.Max(256)),
	)
}

func (o *PasswordOptions) classes() []string {
	var classes []string
	if o.IncludeUppercase {
		classes = append(classes, upperChars)
	}
	if o.IncludeLowercase {
		classes = append(classes, lowerChars)
	}
	if o.IncludeNumbers {
		classes = append(classes, numberChars)
	}
	if o.IncludeSymbols {
		classes = append(classes, symbolChars)
	}
	return classes
}

// PasswordGenerator produces random passwords from crypto/rand.
type PasswordGenerator struct{}

// NewPasswordGenerator creates a PasswordGenerator.
func NewPasswordGenerator() *PasswordGenerator {
	return &PasswordGenerator{}
}

// Generate returns a password of opts.Length characters. Every selected class
// contributes at least one character.
func (g *PasswordGenerator) Generate(opts PasswordOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	classes := opts.classes()
	if len(classes) == 0 {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "at least one character class must be selected")
	}

	var charset string
	for _, c := range classes {
		charset += c
	}

	out := make([]byte, opts.Length)
	for i, class := range classes {
		ch, err := pick(class)
		if err != nil {
			return "", err
		}
		out[i] = ch
	}
	for i := len(classes); i < opts.Length; i++ {
		ch, err := pick(charset)
		if err != nil {
			return "", err
		}
		out[i] = ch
	}

	// Fisher-Yates so the guaranteed characters are not always in front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

func pick(set string) (byte, error) {
	i, err := randomIndex(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read randomness: %w", err)
	}
	return int(v.Int64()), nil
}
