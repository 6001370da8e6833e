package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// Validationf builds an ErrValidation with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Internal wraps a persistence or storage failure with the failing
// operation, preserving the original message. Errors that already carry a
// specific kind pass through unchanged so callers keep the more precise
// status.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrValidation):
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
