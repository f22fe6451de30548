package outcome

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure independently of any wire protocol.
// Adapters map kinds onto their own idiom (HTTP status codes for the REST
// surface, success-reply-with-failure-payload for the envelope surface).
type Kind string

const (
	KindNone             Kind = ""
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindInvalidOperation Kind = "invalid_operation"
	KindDivisionByZero   Kind = "division_by_zero"
	KindInternal         Kind = "internal"
)

// Error is the single domain error type shared by the calculator and user
// operations. Domain code never raises transport-level errors.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s [%s] (caused by: %v)", e.Message, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s [%s]", e.Message, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidationError creates an error for a rejected input value
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewNotFoundError creates an error for a lookup miss
func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// NewConflictError creates an error for a uniqueness violation
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInvalidOperationError creates an error for an unrecognized operation name
func NewInvalidOperationError(message string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: message}
}

// NewDivisionByZeroError creates an error for a zero divisor
func NewDivisionByZeroError(message string) *Error {
	return &Error{Kind: KindDivisionByZero, Message: message}
}

// NewInternalError creates an error for an unexpected fault
func NewInternalError(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}

// KindOf extracts the failure kind from an error chain. Errors that are not
// *Error are treated as internal faults.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return KindInternal
}

// MessageOf extracts the human-readable message from an error chain.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Message
	}
	return err.Error()
}
