// Package errors provides application-level error types and utilities.
// It defines the error taxonomy the claim workflow reports: validation,
// not found, conflict, rate limited, ledger, and internal errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation_error"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeConflict    ErrorType = "conflict"
	ErrorTypeRateLimited ErrorType = "rate_limited"
	ErrorTypeLedger      ErrorType = "ledger_error"
	ErrorTypeInternal    ErrorType = "internal_error"
	ErrorTypeBadRequest  ErrorType = "bad_request"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`

	cause error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches an underlying error for unwrapping
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

func newAppError(errType ErrorType, code int, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details...)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details...)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details...)
}

// NewRateLimitError creates a new rate limited error
func NewRateLimitError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeRateLimited, http.StatusTooManyRequests, message, details...)
}

// NewLedgerError creates a new ledger error. Ledger failures are never fatal
// to the service; they surface as bad gateway responses when propagated.
func NewLedgerError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeLedger, http.StatusBadGateway, message, details...)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details...)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details...)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsRateLimitError checks if the error is a rate limited error
func IsRateLimitError(err error) bool {
	return isType(err, ErrorTypeRateLimited)
}

// IsLedgerError checks if the error is a ledger error
func IsLedgerError(err error) bool {
	return isType(err, ErrorTypeLedger)
}
