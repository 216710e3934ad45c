package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrAuthFailed     ErrorType = "AUTH_FAILED"
	ErrInvalidRequest ErrorType = "INVALID_REQUEST"
	ErrNotFound       ErrorType = "NOT_FOUND"
	ErrInternal       ErrorType = "INTERNAL_ERROR"
)

// InternalMessage is the only text a client ever sees for a 5xx.
const InternalMessage = "Internal Server Error"

// AppError is the error shape rendered by the ErrorHandler middleware.
type AppError struct {
	Type       ErrorType `json:"code"`
	Message    string    `json:"message"`
	Details    any       `json:"details,omitempty"`
	HTTPStatus int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Unhandled reports whether the error should be treated as a server failure.
func (e *AppError) Unhandled() bool {
	return e.HTTPStatus >= http.StatusInternalServerError
}

func New(errType ErrorType, msg string, cause error) *AppError {
	return &AppError{
		Type:       errType,
		Message:    msg,
		Cause:      cause,
		HTTPStatus: mapTypeToStatus(errType),
	}
}

func NewInvalidRequest(msg string, details any) *AppError {
	e := New(ErrInvalidRequest, msg, nil)
	e.Details = details
	return e
}

func NewUnauthorized(msg string) *AppError {
	return New(ErrAuthFailed, msg, nil)
}

func NewInternal(cause error) *AppError {
	return New(ErrInternal, InternalMessage, cause)
}

// Wrap converts any error into an AppError. Unknown errors become internal
// failures and keep the original error as Cause.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(err)
}

// Public returns the copy of e that is safe to send to a client.
func (e *AppError) Public() *AppError {
	if !e.Unhandled() {
		return e
	}
	return &AppError{
		Type:       ErrInternal,
		Message:    InternalMessage,
		HTTPStatus: e.HTTPStatus,
	}
}

func mapTypeToStatus(t ErrorType) int {
	switch t {
	case ErrInvalidRequest:
		return http.StatusBadRequest
	case ErrAuthFailed:
		return http.StatusUnauthorized
	case ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
