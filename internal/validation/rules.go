// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/zkvault/internal/errors"
)

// APIKeyPrefix is the fixed prefix of every generated API key.
const APIKeyPrefix = "agies_"

var apiKeyRegex = regexp.MustCompile(`^` + APIKeyPrefix + `[0-9a-f]{64}$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PassphraseStrength validates a master passphrase meets minimum requirements.
type PassphraseStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// DefaultPassphraseStrength accepts long passphrases made of plain words.
var DefaultPassphraseStrength = PassphraseStrength{MinLength: 12}

// Validate checks if the passphrase meets the configured requirements
func (p PassphraseStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_passphrase_strength", "passphrase must be a string")
	}

	if len([]rune(s)) < p.MinLength {
		return validation.NewError(
			"validation_passphrase_min_length",
			fmt.Sprintf("passphrase must be at least %d characters", p.MinLength),
		)
	}

	if p.RequireUpper && !hasUpperCase(s) {
		return validation.NewError(
			"validation_passphrase_uppercase",
			"passphrase must contain at least one uppercase letter",
		)
	}

	if p.RequireLower && !hasLowerCase(s) {
		return validation.NewError(
			"validation_passphrase_lowercase",
			"passphrase must contain at least one lowercase letter",
		)
	}

	if p.RequireNumber && !hasNumber(s) {
		return validation.NewError("validation_passphrase_number", "passphrase must contain at least one number")
	}

	if p.RequireSpecial && !hasSpecialChar(s) {
		return validation.NewError(
			"validation_passphrase_special",
			"passphrase must contain at least one special character",
		)
	}

	return nil
}

// hasUpperCase checks if string contains uppercase letters
func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// hasLowerCase checks if string contains lowercase letters
func hasLowerCase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

// hasNumber checks if string contains numbers
func hasNumber(s string) bool {
	for _, r := range s {
		if unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// hasSpecialChar checks if string contains special characters
func hasSpecialChar(s string) bool {
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// ObjectID validates an identifier that becomes part of a key derivation context.
// Empty strings are left to validation.Required.
var ObjectID = validation.NewStringRuleWithError(
	func(s string) bool {
		return !strings.Contains(s, ":")
	},
	validation.NewError("validation_object_id", "must not contain ':'"),
)

// APIKey validates the "agies_" + 64 lowercase hex characters format.
var APIKey = validation.NewStringRuleWithError(
	func(s string) bool {
		return apiKeyRegex.MatchString(s)
	},
	validation.NewError("validation_api_key_format", "must be a valid API key"),
)
