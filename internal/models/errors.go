package models

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrNotFound    ErrorKind = "not_found"
	ErrDuplicate   ErrorKind = "duplicate"
	ErrFieldNotSet ErrorKind = "field_not_set"
)

// Error is returned by address book and notes operations.
// Message is written for the user and is shown verbatim by the command layer.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func NewContactNotFoundError(name string) *Error {
	return NewError(ErrNotFound, fmt.Sprintf("Contact with name %s doesn't exist", name), nil)
}

func NewNoteNotFoundError(title string) *Error {
	return NewError(ErrNotFound, fmt.Sprintf("Note '%s' not found.", title), nil)
}

func NewFieldNotSetError(field, name string) *Error {
	return NewError(ErrFieldNotSet, fmt.Sprintf("%s of %s is not set", field, name), nil)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var modelErr *Error
	if !errors.As(err, &modelErr) {
		return false
	}
	return modelErr.Kind == kind
}
