package usecase

import (
	"errors"
	"fmt"

	"dummy-ticket/internal/payment"
)

var (
	// ErrMissingBookingReference means the checkout session was created without
	// a booking_id. Retrying cannot fix it.
	ErrMissingBookingReference = errors.New("payment session has no booking reference")
	// ErrBookingIDConflict means the booking id is already taken by a booking
	// belonging to a different payment session.
	ErrBookingIDConflict = errors.New("booking id already used by another payment session")

	ErrPaymentNotComplete = errors.New("payment not complete")
	ErrUpstream           = errors.New("payment provider unavailable")
	ErrInvalidSignature   = payment.ErrInvalidSignature

	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyExists      = errors.New("already exists")
)

// PersistenceError wraps a store failure other than a uniqueness conflict.
// Transient failures (timeouts, dropped connections) are safe to retry from scratch.
type PersistenceError struct {
	Op        string
	Transient bool
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsTransient reports whether err is a PersistenceError worth retrying.
func IsTransient(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe) && pe.Transient
}

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}
