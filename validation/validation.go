// Package validation checks user-supplied values at the store boundary.
// Every check returns a typed result (value + error) instead of a bare
// boolean so callers can surface the precise rejection reason.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"chat-deck/domain"
	"chat-deck/errors"
)

// MaxContentLength bounds trimmed message content, in runes.
const MaxContentLength = 2000

var validate = validator.New()

type identifierPayload struct {
	ID string `validate:"required,min=1,max=64"`
}

type themePayload struct {
	Value string `validate:"required,oneof=light dark system"`
}

// Content trims raw input and accepts it iff the result is non-empty and at
// most MaxContentLength runes. The trimmed content is returned on success.
func Content(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.ErrEmptyContent
	}
	if utf8.RuneCountInString(trimmed) > MaxContentLength {
		return "", fmt.Errorf("%w: %d runes", errors.ErrContentTooLong, utf8.RuneCountInString(trimmed))
	}
	return trimmed, nil
}

// Identifier accepts channel and user identifiers: 1 to 64 characters of
// lowercase letters, digits, hyphen, or underscore.
func Identifier(id string) error {
	if err := validate.Struct(identifierPayload{ID: id}); err != nil {
		return fmt.Errorf("%w: %q", errors.ErrInvalidIdentifier, id)
	}
	for _, r := range id {
		if !isIdentifierRune(r) {
			return fmt.Errorf("%w: %q", errors.ErrInvalidIdentifier, id)
		}
	}
	return nil
}

// ThemeValue accepts only members of the theme enumeration.
func ThemeValue(s string) error {
	if err := validate.Struct(themePayload{Value: s}); err != nil {
		return fmt.Errorf("%w: %q", errors.ErrInvalidTheme, s)
	}
	return nil
}

// ParseTheme validates then converts, falling back to the default when the
// stored value is unusable.
func ParseTheme(s string) domain.Theme {
	if err := ThemeValue(s); err != nil {
		return domain.DefaultTheme
	}
	return domain.Theme(s)
}

func isIdentifierRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}
