package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not act on the target resource.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidOrExpiredCode is returned for a one-time code that is wrong, expired,
// or already consumed. The three cases are deliberately indistinguishable so the
// response does not leak which check failed.
var ErrInvalidOrExpiredCode = errors.New("invalid or expired code")

// ErrInvalidToken indicates a third-party identity token failed verification.
var ErrInvalidToken = errors.New("invalid identity token")

// ErrDeliveryFailure indicates an external delivery channel (email, push) failed.
var ErrDeliveryFailure = errors.New("delivery failure")

// NeedsRegistrationError signals that a verified external identity has no matching
// account. It is a branch signal rather than a failure: the handler surfaces the
// verified contact details so the client can continue into registration.
type NeedsRegistrationError struct {
	Phone string
	Email string
}

func (e *NeedsRegistrationError) Error() string {
	return "no account for verified identity, registration required"
}

// AppError carries an HTTP status alongside a message for errors that are mapped
// directly at the handler boundary.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewBadRequestError creates an AppError with a 400 status.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// NewUnauthorizedError creates an AppError with a 401 status.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

// NewNotFoundError creates an AppError with a 404 status.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

// NewInternalServerError creates an AppError with a 500 status.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}
