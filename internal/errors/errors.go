// Package errors provides the typed error taxonomy for the ledger engine.
// All service-layer errors use AppError so callers get a stable reason
// code and HTTP mapping, and internal details never leak to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}

	// ErrStoreUnavailable is the storage-not-ready result: the schema has
	// not been provisioned yet. Callers degrade ("reports unavailable")
	// instead of treating it as a generic fault.
	ErrStoreUnavailable = &AppError{Code: "STORE_UNAVAILABLE", Message: "Ledger storage is not provisioned", StatusCode: http.StatusServiceUnavailable}
)

// Referential errors.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrPropertyNotFound    = &AppError{Code: "PROPERTY_NOT_FOUND", Message: "Property not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
)

// Annual amount errors.
var (
	ErrAnnualAmountNotFound = &AppError{Code: "ANNUAL_AMOUNT_NOT_FOUND", Message: "Annual amount not found", StatusCode: http.StatusNotFound}
)

// Recurring definition errors.
var (
	ErrDefinitionNotFound = &AppError{Code: "RECURRING_DEFINITION_NOT_FOUND", Message: "Recurring definition not found", StatusCode: http.StatusNotFound}
	ErrInvalidMonthWindow = &AppError{Code: "INVALID_MONTH_WINDOW", Message: "End month precedes start month", StatusCode: http.StatusBadRequest}
)
