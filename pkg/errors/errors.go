// Package errors carries the error kinds shared by every service. A kind maps
// to exactly one HTTP status; handlers only pick the kind and the message.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// Standard error functions
var (
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)

// FieldError represents a validation error for a specific field
type FieldError struct {
	Kind    string `json:"kind"`
	Field   string `json:"field"`
	Message string `json:"message,omitempty"`
}

func (f *FieldError) Error() string {
	return fmt.Sprintf("%s (%s): %s", f.Field, f.Kind, f.Message)
}

func NewFieldError(kind, field, reason string) FieldError {
	return FieldError{Kind: kind, Field: field, Message: reason}
}

// StatusCode represents an HTTP status code error
type StatusCode int

// Error implements error
func (status StatusCode) Error() string {
	return http.StatusText(int(status))
}

// Status builds a kind bound to the given HTTP status code.
func Status(code int) *Error {
	return &Error{Kind: http.StatusText(code), status: code, cause: StatusCode(code)}
}

var (
	Invalid         *Error = Status(http.StatusBadRequest)
	Unauthorized    *Error = Status(http.StatusUnauthorized)
	Forbidden       *Error = Status(http.StatusForbidden)
	NotFound        *Error = Status(http.StatusNotFound)
	Conflict        *Error = Status(http.StatusConflict)
	TooLarge        *Error = Status(http.StatusRequestEntityTooLarge)
	Unprocessable   *Error = Status(http.StatusUnprocessableEntity)
	TooManyRequests *Error = Status(http.StatusTooManyRequests)
	Internal        *Error = Status(http.StatusInternalServerError)
	BadGateway      *Error = Status(http.StatusBadGateway)
	Unavailable     *Error = Status(http.StatusServiceUnavailable)
)

// Error is a custom error type for passing more information
type Error struct {
	// Kind is the returned error type
	Kind string `json:"kind"`
	// Message is the human readable string that indicate the error
	Message string `json:"message"`
	// Fields used when there's validation error for a field.
	Fields []FieldError `json:"fields,omitempty"`

	status int
	trace  []byte
	cause  error
}

var _ error = (*Error)(nil)

func New(message string) *Error {
	return &Error{Kind: "Unknown", Message: message}
}

func Wrap(err error) *Error {
	return &Error{cause: err}
}

// Error implements error
func (e *Error) Error() string {
	str := fmt.Sprintf("[%s] ", e.Kind)
	if e.Message != "" {
		str += e.Message
	}
	if e.cause != nil {
		if _, ok := e.cause.(StatusCode); !ok {
			str += fmt.Sprintf(" (%s)", e.cause)
		}
	}
	if len(e.trace) > 0 {
		str = str + fmt.Sprintf("\n\nTrace: %s", string(e.trace))
	}
	return str
}

// Reason returns a copy of the error with kind set to given value. The
// status code is kept.
func (e *Error) Reason(kind string) *Error {
	err := *e
	err.Kind = kind
	return &err
}

// HTTPStatus returns the status code of the kind, 0 for errors without one.
func (e *Error) HTTPStatus() int {
	return e.status
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Wrap makes a copy of the error with the given cause
func (e *Error) Wrap(cause error) *Error {
	err := *e
	err.cause = cause
	return &err
}

// Explain makes a copy of the error with given message
func (e *Error) Explain(message string, args ...any) *Error {
	err := *e
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	err.Message = message
	return &err
}

// Trace sets the error stack trace
func (e *Error) Trace() *Error {
	stack := make([]byte, 2048)
	n := runtime.Stack(stack, false)
	e.trace = stack[:n]
	return e
}

// WithField returns a copy of error with the field error appended.
func (e *Error) WithField(kind, field, message string) *Error {
	newError := *e
	newError.Fields = append(append([]FieldError(nil), e.Fields...), NewFieldError(kind, field, message))
	return &newError
}

// Is implements the needed interface for errors.Is
// It checks kind for equality
func (e *Error) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if other, ok := target.(*Error); ok {
		return other.Kind == e.Kind
	}
	return false
}

// KindOf returns the first error in the chain of err that is bound to a
// status, or nil.
func KindOf(err error) *Error {
	var e *Error
	for err != nil {
		if !As(err, &e) {
			return nil
		}
		if e.status != 0 {
			return e
		}
		err = e.cause
	}
	return nil
}

// HTTPStatus walks the chain of err and returns the first status found.
// Errors without a kind report 500.
func HTTPStatus(err error) int {
	if e := KindOf(err); e != nil {
		return e.status
	}
	var code StatusCode
	if As(err, &code) {
		return int(code)
	}
	return http.StatusInternalServerError
}
