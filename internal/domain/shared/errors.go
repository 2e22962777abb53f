package shared

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrAmountNotPositive   = errors.New("amount must be positive")
	ErrUnsupportedCurrency = errors.New("currency is not supported")
)

// ErrValidation indicates input rejected before any state was touched
type ErrValidation struct {
	Field string
	Err   error
}

func (e ErrValidation) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Err.Error()
	}
	return fmt.Sprintf("validation failed on %s: %v", e.Field, e.Err)
}

func (e ErrValidation) Unwrap() error {
	return e.Err
}

// Is implements the errors.Is interface for ErrValidation.
// An empty target field matches any validation failure.
func (e ErrValidation) Is(target error) bool {
	t, ok := target.(ErrValidation)
	if !ok {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}

// Invalid wraps cause as an ErrValidation on field
func Invalid(field string, cause error) error {
	return ErrValidation{Field: field, Err: cause}
}

// ErrNotFound indicates a missing supplier or list
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e ErrNotFound) Error() string {
	return e.Kind + " not found: " + e.ID
}

// Is implements the errors.Is interface for ErrNotFound
func (e ErrNotFound) Is(target error) bool {
	t, ok := target.(ErrNotFound)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return t.ID == "" || t.ID == e.ID
}

// ErrStorage indicates a failed load or save against the remote store
type ErrStorage struct {
	Collection string
	Op         string
	Err        error
}

func (e ErrStorage) Error() string {
	return fmt.Sprintf("storage %s of %s failed: %v", e.Op, e.Collection, e.Err)
}

func (e ErrStorage) Unwrap() error {
	return e.Err
}

// Is implements the errors.Is interface for ErrStorage
func (e ErrStorage) Is(target error) bool {
	t, ok := target.(ErrStorage)
	if !ok {
		return false
	}
	return t.Collection == "" || t.Collection == e.Collection
}
