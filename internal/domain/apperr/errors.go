// Package apperr holds the error categories shared by every domain package.
// Domain errors wrap one of these sentinels so the transport layer can map
// them to a status code with errors.Is without knowing each domain.
package apperr

import "errors"

var (
	ErrValidation       = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidOperation = errors.New("invalid operation")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
