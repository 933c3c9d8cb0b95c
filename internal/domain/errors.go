package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrReturnNotFound         = errors.New("gst return not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserInactive           = errors.New("user is inactive")
	ErrDuplicateEmail         = errors.New("email already exists")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrUnknownReturnSection   = errors.New("unknown return section")
)

// ValidationError reports a single field failing a format check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PreconditionError reports a domain precondition that must hold before an
// operation runs, e.g. quantity > 0 or a non-empty item list on submit.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Reason)
}

// NewPreconditionError builds a PreconditionError.
func NewPreconditionError(format string, args ...any) *PreconditionError {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}

// IllegalStateError reports a filing transition that is not legal from the
// record's current status. The current status is always included so callers
// never silently overwrite filing metadata.
type IllegalStateError struct {
	Current FilingStatus
	Event   FilingEvent
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("cannot %s from status %s", e.Event, e.Current)
}
