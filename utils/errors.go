package utils

import (
	"errors"
	"fmt"
)

// Kind is the closed set of error categories the service layer produces.
// Handlers map kinds to HTTP status codes; callers never see provider or
// driver vocabulary.
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindNotFound        Kind = "not_found"
	KindInvalidToken    Kind = "invalid_token"
	KindAuthProvider    Kind = "auth_provider_error"
	KindStorage         Kind = "storage_error"
)

// AppError carries a kind, a user-facing code/message and the underlying
// cause. Code is only set for auth provider errors (e.g. "weak-password").
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func InvalidArgument(message string) error {
	return &AppError{Kind: KindInvalidArgument, Message: message}
}

func NotFoundError(message string) error {
	return &AppError{Kind: KindNotFound, Message: message}
}

func InvalidTokenError(message string) error {
	return &AppError{Kind: KindInvalidToken, Message: message}
}

func AuthProviderError(code string, err error) error {
	return &AppError{Kind: KindAuthProvider, Code: code, Message: code, Err: err}
}

func StorageError(message string, err error) error {
	return &AppError{Kind: KindStorage, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindStorage for unclassified errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// ErrorCode returns the provider code attached to err, if any.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
