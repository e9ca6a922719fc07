package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by the lookup helpers when no entry has the id.
var ErrNotFound = errors.New("catalog entry not found")

// ValidationError describes one invalid catalog entry.
type ValidationError struct {
	Kind    string // "bean", "grind", "preparation", "topping" or "catalog"
	ID      string // Offending entry id (may be empty)
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.ID, e.Message)
}

// NewValidationError creates a validation error for an entry.
func NewValidationError(kind, id, message string) *ValidationError {
	return &ValidationError{Kind: kind, ID: id, Message: message}
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
