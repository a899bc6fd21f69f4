// Package apperr holds the error kinds shared by every domain package.
// Domain sentinels wrap one of these so the HTTP boundary can classify them
// with errors.Is without knowing each package.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrPersistence  = errors.New("persistence failure")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Validation returns an error of kind ErrValidation with a formatted reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Persistence wraps a storage error unless it already carries a kind.
func Persistence(err error) error {
	if err == nil || Classified(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

// Classified reports whether err already belongs to one of the known kinds.
func Classified(err error) bool {
	for _, k := range []error{ErrNotFound, ErrValidation, ErrConflict, ErrPersistence, ErrUnauthorized, ErrForbidden} {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}
