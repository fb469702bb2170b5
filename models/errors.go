package models

import "errors"

// ValidationError marks input the domain layer rejects: missing required
// fields, invalid enum values, bad date ordering.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError marks a miss at some level of the user → project → task
// ownership chain.
type NotFoundError struct {
	Entity string // "user", "project" or "task"
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func NewNotFoundError(entity string) error { return &NotFoundError{Entity: entity} }

// IsNotFound reports whether err is a chain miss.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
