package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for transport mapping.
type Kind int

const (
	KindValidation Kind = iota + 1000
	KindDuplicateKey
	KindNotFound
	KindInvalidCredentials
	KindPersistence
)

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
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

// Error constructors
func Validation(message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: message,
	}
}

func DuplicateKey(resource string, err error) *AppError {
	return &AppError{
		Kind:    KindDuplicateKey,
		Message: fmt.Sprintf("%s already exists", resource),
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func InvalidCredentials(err error) *AppError {
	return &AppError{
		Kind:    KindInvalidCredentials,
		Message: "invalid credentials",
		Err:     err,
	}
}

func Persistence(err error) *AppError {
	return &AppError{
		Kind:    KindPersistence,
		Message: "persistence failure",
		Err:     err,
	}
}

// KindOf returns the Kind of err if it is (or wraps) an AppError, zero otherwise.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
