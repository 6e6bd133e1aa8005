// Package result implements the success-or-domain-error channel returned by
// the user and engagement stores.
package result

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure. The numeric values double as the HTTP
// status the resolver layer reports for them.
type Code int

const (
	CodeNotFound Code = 404
	CodeConflict Code = 400
	CodeInternal Code = 500
)

// String returns the symbolic name of the code.
func (c Code) String() string {
	switch c {
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeConflict:
		return "CONFLICT"
	case CodeInternal:
		return "INTERNAL"
	default:
		return fmt.Sprintf("CODE(%d)", int(c))
	}
}

// DomainError is an expected, named failure outcome.
type DomainError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotFound builds a NOT_FOUND domain error.
func NotFound(message string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: message}
}

// Conflict builds a CONFLICT domain error.
func Conflict(message string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: message}
}

// Internal builds an INTERNAL domain error. The message is shown to callers,
// so it must never carry storage error text.
func Internal(message string) *DomainError {
	return &DomainError{Code: CodeInternal, Message: message}
}

// AsDomainError reports whether err wraps a *DomainError.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Result is either Ok(value) or a DomainError.
type Result[T any] struct {
	value T
	err   *DomainError
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail wraps a domain error. A nil error is turned into an INTERNAL failure
// so that a Result built with Fail can never look successful.
func Fail[T any](err *DomainError) Result[T] {
	if err == nil {
		err = Internal("unknown error")
	}
	return Result[T]{err: err}
}

// IsOk reports whether the result carries a value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Err returns the domain error, or nil for Ok results.
func (r Result[T]) Err() *DomainError {
	return r.err
}

// Value returns the payload. Calling it on a failed result is a programming
// error and panics.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic(fmt.Sprintf("result: Value called on failed result (%v)", r.err))
	}
	return r.value
}

// Unwrap converts the result into the conventional (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Match calls onOk or onErr depending on the variant and returns what it returns.
func Match[T, R any](r Result[T], onOk func(T) R, onErr func(*DomainError) R) R {
	if r.err != nil {
		return onErr(r.err)
	}
	return onOk(r.value)
}
