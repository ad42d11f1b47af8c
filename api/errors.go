// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-poll.

package api

import "fmt"

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeOutOfMemory
	ErrCodeAlreadyAttached
	ErrCodeIOFailure
	ErrCodeNotSupported
	ErrCodeReentrant
)

// String returns the short name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid argument"
	case ErrCodeOutOfMemory:
		return "out of memory"
	case ErrCodeAlreadyAttached:
		return "already attached"
	case ErrCodeIOFailure:
		return "i/o failure"
	case ErrCodeNotSupported:
		return "not supported"
	case ErrCodeReentrant:
		return "reentrant call"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Common errors used across the library. Compare with errors.Is; any *Error
// carrying the same code matches.
var (
	ErrInvalidArgument   = NewError(ErrCodeInvalidArgument, "invalid argument")
	ErrOutOfMemory       = NewError(ErrCodeOutOfMemory, "out of memory")
	ErrAlreadyAttached   = NewError(ErrCodeAlreadyAttached, "poll event already attached to a context")
	ErrIOFailure         = NewError(ErrCodeIOFailure, "wait for readiness failed")
	ErrNotSupported      = NewError(ErrCodeNotSupported, "operation not supported on this platform")
	ErrReentrantDispatch = NewError(ErrCodeReentrant, "dispatch called from within a dispatch callback")
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap returns a copy of the error with cause attached.
func (e *Error) Wrap(cause error) *Error {
	out := e.clone()
	out.Cause = cause
	return out
}

// WithContext returns a copy of the error with the key/value added. The
// package-level sentinels are never mutated.
func (e *Error) WithContext(key string, value any) *Error {
	out := e.clone()
	out.Context[key] = value
	return out
}

func (e *Error) clone() *Error {
	out := &Error{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Context: make(map[string]any, len(e.Context)+1),
	}
	for k, v := range e.Context {
		out.Context[k] = v
	}
	return out
}
