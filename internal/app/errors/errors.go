package errors

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline and store failures
type Kind string

const (
	// KindValidation covers unsupported sources and malformed requests
	KindValidation Kind = "validation"
	// KindUpstream covers audio extraction, job submission and polling failures
	KindUpstream Kind = "upstream"
	// KindMaterialization covers malformed raw result payloads
	KindMaterialization Kind = "materialization"
	// KindNotFound covers references to documents that do not exist
	KindNotFound Kind = "not_found"
	// KindStorage covers object-store I/O failures unrelated to absence
	KindStorage Kind = "storage"
)

// Error represents a standardized error with a kind and an optional cause
type Error struct {
	kind    Kind
	message string
	cause   error
}

// New creates a new error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf creates a new formatted error of the given kind
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		kind:    kind,
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, kind Kind, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		kind:    kind,
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the error classification
func (e *Error) Kind() Kind {
	return e.kind
}

// KindOf returns the kind of err, walking the wrap chain.
// Errors that never passed through this package report KindStorage
// only when explicitly wrapped; everything else is unclassified.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return "", false
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	return IsKind(err, KindValidation)
}
