package errors

import (
	"errors"
	"fmt"
)

// Error codes understood by the transport layer.
const (
	CodeValidation = "VALIDATION_FAILED"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL_ERROR"
)

// Entity kinds reported by NotFound errors.
const (
	KindStudent = "student"
	KindClass   = "class"
)

// Conflict reasons.
const (
	ReasonDuplicateEmail  = "duplicate_email"
	ReasonAlreadyEnrolled = "already_enrolled"
	ReasonNotEnrolled     = "not_enrolled"
)

// FieldError describes a single violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error represents a typed domain failure. It carries no transport status;
// mapping codes to protocol-specific signalling is the caller's concern.
type Error struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Kind    string       `json:"kind,omitempty"`
	Reason  string       `json:"reason,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Validation reports every violated field of a submission at once.
func Validation(fields []FieldError) *Error {
	return &Error{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

// NotFound reports a missing student or class.
func NotFound(kind string) *Error {
	return &Error{Code: CodeNotFound, Kind: kind, Message: kind + " not found"}
}

// Conflict reports a uniqueness or relational-state rule blocking the operation.
func Conflict(reason string) *Error {
	return &Error{Code: CodeConflict, Reason: reason, Message: conflictMessages[reason]}
}

// Internal wraps an unexpected failure from a collaborator.
func Internal(err error, message string) *Error {
	return Wrap(err, CodeInternal, message)
}

var conflictMessages = map[string]string{
	ReasonDuplicateEmail:  "email already exists",
	ReasonAlreadyEnrolled: "student is already enrolled in this class",
	ReasonNotEnrolled:     "the student is not enrolled in the specified class",
}

// ErrCacheMiss is returned by cache lookups that found nothing.
var ErrCacheMiss = errors.New("cache miss")

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err, "internal server error")
}

// IsCode reports whether err is an *Error carrying the given code.
func IsCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsNotFound reports whether err is a NotFound failure for kind.
func IsNotFound(err error, kind string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeNotFound && e.Kind == kind
}

// IsConflict reports whether err is a Conflict failure with the given reason.
func IsConflict(err error, reason string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeConflict && e.Reason == reason
}
