// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// AppError is the only error shape that crosses the process boundary:
// a status code and a human-readable message, nothing else.
type AppError struct {
	Err     error
	Message string
	Status  int
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

func NewAppError(err error, message string, status int) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Status:  status,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Not authorized"
	}
	return NewAppError(nil, message, http.StatusUnauthorized)
}

func NotFoundError(message string) *AppError {
	if message == "" {
		message = "Not found"
	}
	return NewAppError(ErrNotFound, message, http.StatusNotFound)
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrDuplicateKey, message, http.StatusConflict)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, http.StatusBadRequest)
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, "Not authorized", http.StatusUnauthorized)
}

func TokenExpiredError() *AppError {
	return NewAppError(ErrTokenExpired, "Not authorized", http.StatusUnauthorized)
}
