// Package errors defines application-level errors carried across the
// delivery boundary, mapping business failures to HTTP status codes.
package errors

import (
	"net/http"

	"hive/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Order validation errors; rejected before any write.
	ErrUnknownItem = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_ITEM",
		"Order references an item not present in the catalog",
		"",
	)

	ErrEmptyOrder = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_ORDER",
		"Order contains no line items",
		"",
	)

	ErrInvalidQuantity = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QUANTITY",
		"Line item quantity must be at least 1",
		"",
	)

	ErrUnknownChannel = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_CHANNEL",
		"Unsupported sales channel",
		"",
	)

	ErrUnknownStore = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_STORE",
		"Order references a store not present in the catalog",
		"",
	)

	// Resource exhaustion; rejected before any commit, fully retryable by
	// the caller with adjusted quantities or a different store.
	ErrInsufficientStock = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_STOCK",
		"Requested quantity exceeds on-hand stock",
		"",
	)

	// Downstream inconsistency; surfaced as a warning on a Degraded order.
	ErrCustomerNotFound = NewBaseError(
		http.StatusNotFound,
		"CUSTOMER_NOT_FOUND",
		"Customer does not exist",
		"",
	)

	ErrInsufficientPoints = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_POINTS",
		"Points balance is lower than the requested redemption",
		"",
	)

	ErrStoreNotFound = NewBaseError(
		http.StatusNotFound,
		"STORE_NOT_FOUND",
		"Store does not exist",
		"",
	)

	// Transient infrastructure errors; retried with bounded backoff before
	// surfacing. Callers may retry the whole request.
	ErrStoreUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"STORE_UNAVAILABLE",
		"Persistence collaborator unreachable",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)
