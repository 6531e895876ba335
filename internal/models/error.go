package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Registration and verification errors
	ErrValidation        = errors.New("validation failed")
	ErrInvalidOTP        = errors.New("invalid otp")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrDelivery          = errors.New("notification delivery failed")
)

// ValidationError carries a field-level message for 400 responses.
// Credential and existence failures never use it; those stay generic.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a field-level validation error
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
