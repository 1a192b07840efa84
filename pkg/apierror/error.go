package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Ledger error codes. Callers branch on these to decide whether to retry,
// prompt a user, or abort, so failures are never collapsed to a generic code.
const (
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeAlreadyExists         = "ALREADY_EXISTS"
	CodeNotFound              = "NOT_FOUND"
	CodeAlreadyInitialized    = "ALREADY_INITIALIZED"
	CodeInsufficientStock     = "INSUFFICIENT_STOCK"
	CodeInsufficientFunds     = "INSUFFICIENT_FUNDS"
	CodeCurrencyMismatch      = "CURRENCY_MISMATCH"
	CodeUnexpectedInstruction = "UNEXPECTED_INSTRUCTION"
	CodeTotalMismatch         = "TOTAL_MISMATCH"
	CodeUnknownIngredient     = "UNKNOWN_INGREDIENT"
	CodeUnknownMenuItem       = "UNKNOWN_MENU_ITEM"
	CodeMenuItemInactive      = "MENU_ITEM_INACTIVE"
	CodeInvalidTransition     = "INVALID_TRANSITION"
	CodeLocked                = "LOCKED"
)

// Error represents a structured API error response.
type Error struct {
	StatusCode int          `json:"-"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// WithDetails adds field-level error details.
func (e *Error) WithDetails(details ...FieldError) *Error {
	e.Details = details
	return e
}

// ToJSON converts the error to JSON bytes.
func (e *Error) ToJSON() []byte {
	response := map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"code":    e.Code,
			"message": e.Message,
		},
	}

	if len(e.Details) > 0 {
		response["error"].(map[string]interface{})["details"] = e.Details
	}

	data, _ := json.Marshal(response)
	return data
}

// CodeOf returns the code of err if it is an *Error, or empty string.
func CodeOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
	}
}

// ValidationError creates a 400 error with validation details.
func ValidationError(message string, details ...FieldError) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    message,
		Details:    details,
	}
}

// Unauthorized creates a 401 error: the signer does not hold the role the
// operation requires.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "you are not authorized to perform this action"
	}
	return &Error{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeUnauthorized,
		Message:    message,
	}
}

// NotFound creates a 404 error: the derived slot holds no record.
func NotFound(message string) *Error {
	if message == "" {
		message = "record not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       CodeNotFound,
		Message:    message,
	}
}

// AlreadyExists creates a 409 error: the derived slot is already occupied.
func AlreadyExists(message string) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		Code:       CodeAlreadyExists,
		Message:    message,
	}
}

// AlreadyInitialized creates a 409 error for a repeated protocol init.
func AlreadyInitialized(message string) *Error {
	if message == "" {
		message = "protocol state already initialized"
	}
	return &Error{
		StatusCode: http.StatusConflict,
		Code:       CodeAlreadyInitialized,
		Message:    message,
	}
}

// Locked creates a 423 error: the protocol lock blocks tenant mutations.
func Locked() *Error {
	return &Error{
		StatusCode: http.StatusLocked,
		Code:       CodeLocked,
		Message:    "the protocol is locked, you can't perform this action",
	}
}

// InsufficientStock creates a 409 error for a stock deduction that would go
// negative.
func InsufficientStock(message string) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		Code:       CodeInsufficientStock,
		Message:    message,
	}
}

// InsufficientFunds creates a 402 error from the asset service.
func InsufficientFunds(message string) *Error {
	if message == "" {
		message = "the transfer cannot be covered"
	}
	return &Error{
		StatusCode: http.StatusPaymentRequired,
		Code:       CodeInsufficientFunds,
		Message:    message,
	}
}

// CurrencyMismatch creates a 422 error: the payment account's asset differs
// from the restaurant's recorded currency.
func CurrencyMismatch(message string) *Error {
	return &Error{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       CodeCurrencyMismatch,
		Message:    message,
	}
}

// UnexpectedInstruction creates a 400 error: the enclosing instruction set
// carries more than the expected transfer.
func UnexpectedInstruction(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       CodeUnexpectedInstruction,
		Message:    message,
	}
}

// TotalMismatch creates a 422 error: the caller-supplied total disagrees with
// the recomputed menu price sum.
func TotalMismatch(message string) *Error {
	return &Error{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       CodeTotalMismatch,
		Message:    message,
	}
}

// UnknownIngredient creates a 422 error for a menu item referencing an
// inventory SKU that does not exist.
func UnknownIngredient(message string) *Error {
	return &Error{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       CodeUnknownIngredient,
		Message:    message,
	}
}

// UnknownMenuItem creates a 422 error for an order referencing a menu SKU that
// does not exist.
func UnknownMenuItem(message string) *Error {
	return &Error{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       CodeUnknownMenuItem,
		Message:    message,
	}
}

// MenuItemInactive creates a 422 error for an order referencing an inactive
// menu item.
func MenuItemInactive(message string) *Error {
	return &Error{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       CodeMenuItemInactive,
		Message:    message,
	}
}

// InvalidTransition creates a 409 error for a status change out of a terminal
// state.
func InvalidTransition(message string) *Error {
	return &Error{
		StatusCode: http.StatusConflict,
		Code:       CodeInvalidTransition,
		Message:    message,
	}
}

// InternalError creates a 500 Internal Server Error.
func InternalError(message string) *Error {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
	}
}
