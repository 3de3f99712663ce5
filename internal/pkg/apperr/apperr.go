// Package apperr defines the error taxonomy shared by the storefront services.
//
// Services return *Error values (directly or wrapped); the HTTP layer reads the
// Kind back with KindOf and picks a status code. Storage failures keep the
// underlying driver error reachable through Unwrap.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure independently of the transport.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindValidation  Kind = "validation_error"
	KindConflict    Kind = "conflict"
	KindAuthFailure Kind = "auth_failure"
	KindStorage     Kind = "storage_error"
	KindInternal    Kind = "internal"
)

// Error carries a Kind, the operation that failed and a caller-safe message.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind and Message so package level sentinels
// keep working after being wrapped with an Op.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func NotFound(op, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: fmt.Sprintf(format, args...)}
}

func Validation(op, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

func Conflict(op, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Op: op, Message: fmt.Sprintf(format, args...)}
}

func AuthFailure(op, message string) *Error {
	return &Error{Kind: KindAuthFailure, Op: op, Message: message}
}

// Storage wraps a database failure. A nil err returns nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStorage, Op: op, Message: "storage operation failed", Err: err}
}

// Classify returns err unchanged when it already carries a Kind and reports
// it as a storage failure otherwise.
func Classify(op string, err error) error {
	var appErr *Error
	if err == nil || errors.As(err, &appErr) {
		return err
	}
	return Storage(op, err)
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message returns the caller-safe message of err. Internal and storage
// failures never expose the wrapped driver error.
func Message(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Kind == KindInternal {
		return "internal server error"
	}
	return appErr.Message
}

// HTTPStatus maps a Kind to the status code returned by the HTTP surface.
func HTTPStatus(k Kind) int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuthFailure:
		return http.StatusUnauthorized
	case KindStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
