// Package apperror defines a centralized system for application-specific errors.
// Services return typed *AppError values; a single boundary layer (the handlers'
// WriteError helper) maps them onto HTTP status codes and the API's wire
// formats. Two wire formats exist, matching the API contract:
//
//   - authentication failures render as {"msg": "..."}
//   - everything else renders as {"errors": [{"msg": "..."}]}
//
// Server-side faults (database, internal) keep their detailed Message for
// logging but always render as an opaque "Server error" to the caller.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the type of application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// AuthError represents an authentication error (missing or invalid token)
	AuthError
	// UnauthorizedError represents an authorization error (acting on another user's resource)
	UnauthorizedError
	// NotFoundError represents a resource not found error
	NotFoundError
	// ValidationError represents an input validation error
	ValidationError
	// BadRequestError represents a generic bad request
	BadRequestError
	// InternalError represents a generic internal server error
	InternalError
)

// serverErrorMessage is the opaque message surfaced for 5xx faults.
// Internal detail stays on the AppError for logs and never reaches the caller.
const serverErrorMessage = "Server error"

// AppError is the custom error type for the application.
// It wraps an optional underlying error and, for validation failures,
// carries the individual rule messages.
type AppError struct {
	Type    ErrorType
	Message string
	Fields  []FieldError // populated for validation errors with per-rule messages
	Err     error        // underlying error
}

// Error returns the string representation of the error, satisfying the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error, supporting errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case DatabaseError, ConfigError, InternalError:
		return http.StatusInternalServerError
	case AuthError:
		return http.StatusUnauthorized
	case UnauthorizedError:
		// Ownership checks deliberately answer 401, not 403; the API does not
		// distinguish "not authenticated" from "not your resource".
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. Generic constructor; the typed
// constructors below are preferred at call sites.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError (missing/invalid token)
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewUnauthorizedError creates a new UnauthorizedError (ownership failure)
func NewUnauthorizedError(message string, underlyingError error) *AppError {
	return NewAppError(UnauthorizedError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a ValidationError carrying one message per failed rule.
func NewValidationError(fields ...FieldError) *AppError {
	msg := "validation failed"
	if len(fields) > 0 {
		msg = fields[0].Msg
	}
	return &AppError{
		Type:    ValidationError,
		Message: msg,
		Fields:  fields,
	}
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// FieldError is a single failure message in an error list response.
type FieldError struct {
	Msg string `json:"msg" example:"Text is required"`
}

// ErrorListResponse is the error payload used by validation failures,
// not-found conditions, ownership checks and server faults.
type ErrorListResponse struct {
	Errors []FieldError `json:"errors"`
}

// MsgResponse is the error payload used by token failures.
type MsgResponse struct {
	Msg string `json:"msg" example:"Token is not valid"`
}

// ToResponse converts an AppError to the payload the API serializes for it.
func (e *AppError) ToResponse() interface{} {
	if e.Type == AuthError {
		return MsgResponse{Msg: e.Message}
	}
	if len(e.Fields) > 0 {
		return ErrorListResponse{Errors: e.Fields}
	}
	msg := e.Message
	if e.StatusCode() == http.StatusInternalServerError {
		msg = serverErrorMessage
	}
	return ErrorListResponse{Errors: []FieldError{{Msg: msg}}}
}

// FromError attempts to convert a generic error to an *AppError.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks if an error is an AuthError (authentication problem)
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsUnauthorizedError checks if an error is an UnauthorizedError (ownership problem)
func IsUnauthorizedError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == UnauthorizedError
}

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}
