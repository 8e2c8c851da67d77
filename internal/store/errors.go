package store

import (
	"errors"
	"fmt"
)

var (
	// ErrAnchorNotFound is returned when a pagination cursor names a chat that does not exist.
	ErrAnchorNotFound = errors.New("pagination anchor not found")
	// ErrMissingField is returned when a create omits a required field.
	ErrMissingField = errors.New("missing required field")
)

type MissingFieldError struct {
	Entity string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Entity, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

func missing(entity, field string) error {
	return &MissingFieldError{Entity: entity, Field: field}
}
