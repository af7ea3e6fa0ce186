// Package errors provides the structured error type used across seqkit.
// Every failure raised by the engine itself is an *AppError carrying a
// machine-readable code, so callers can branch with errors.Is against the
// exported sentinels or inspect Code directly.
//
// Errors returned by user callbacks and source iterators are never wrapped;
// they reach the consumer unmodified.
package errors
