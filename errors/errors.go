package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type raised by the engine.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code, so that
// errors.Is(err, ErrEmptySequence) matches any empty-sequence failure.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Sentinels for errors.Is. They must not be mutated; constructors below
// always return fresh values.
var (
	ErrInvalidArgument = New(ErrCodeInvalidArgument, "invalid argument")
	ErrInvalidConfig   = New(ErrCodeInvalidConfig, "invalid configuration")
	ErrEmptySequence   = New(ErrCodeEmptySequence, "sequence contains no elements")
	ErrMoreThanOne     = New(ErrCodeMoreThanOne, "sequence contains more than one element")
	ErrOutOfRange      = New(ErrCodeOutOfRange, "index out of range")
	ErrInvalidCast     = New(ErrCodeInvalidCast, "invalid cast")
	ErrDuplicateKey    = New(ErrCodeDuplicateKey, "duplicate key")
)

// --- Constructors ---

// InvalidArgument creates an error for a malformed construction parameter.
func InvalidArgument(param, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("Invalid argument %s: %s", param, reason),
		Details: map[string]any{"param": param},
	}
}

// InvalidConfig creates an error for configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// EmptySequence creates an error for an operation that needs at least one element.
func EmptySequence(operation string) *AppError {
	return &AppError{
		Code: ErrCodeEmptySequence, Message: "Sequence contains no elements.",
		Details: map[string]any{"operation": operation},
	}
}

// MoreThanOne creates an error for a single-element request over a longer sequence.
func MoreThanOne(operation string) *AppError {
	return &AppError{
		Code: ErrCodeMoreThanOne, Message: "Sequence contains more than one element.",
		Details: map[string]any{"operation": operation},
	}
}

// OutOfRange creates an error for a positional request past the end of the sequence.
func OutOfRange(index int) *AppError {
	return &AppError{
		Code: ErrCodeOutOfRange, Message: fmt.Sprintf("Index %d is out of range.", index),
		Details: map[string]any{"index": index},
	}
}

// InvalidCast creates an error for an element that cannot be converted.
func InvalidCast(from, to string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidCast, Message: fmt.Sprintf("Unable to cast %s to %s.", from, to),
		Details: map[string]any{"from": from, "to": to},
	}
}

// DuplicateKey creates an error for a key seen twice by a unique-key terminal.
func DuplicateKey(key any) *AppError {
	return &AppError{
		Code: ErrCodeDuplicateKey, Message: fmt.Sprintf("An element with key %v was already added.", key),
		Details: map[string]any{"key": key},
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
