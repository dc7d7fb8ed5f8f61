package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is used for invalid request payloads
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the current order status
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeInsufficientStock is used when a variant cannot cover the requested quantity
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the wire format
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":         ErrCodeNotFound,
	"VARIANT_NOT_FOUND": ErrCodeNotFound,
	"ALREADY_EXISTS":    ErrCodeAlreadyExists,

	"UNAUTHORIZED": ErrCodeUnauthorized,
	"FORBIDDEN":    ErrCodeForbidden,

	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INSUFFICIENT_STOCK":   ErrCodeInsufficientStock,
	"INVALID_STATE":        ErrCodeInvalidState,

	"VALIDATION_ERROR":         ErrCodeValidation,
	"INVALID_INPUT":            ErrCodeValidation,
	"INVALID_NAME":             ErrCodeValidation,
	"INVALID_EMAIL":            ErrCodeValidation,
	"INVALID_PASSWORD":         ErrCodeValidation,
	"INVALID_ROLE":             ErrCodeValidation,
	"INVALID_CATEGORY":         ErrCodeValidation,
	"INVALID_DESCRIPTION":      ErrCodeValidation,
	"INVALID_BRAND":            ErrCodeValidation,
	"INVALID_SIZE":             ErrCodeValidation,
	"INVALID_COLOR":            ErrCodeValidation,
	"INVALID_PRICE":            ErrCodeValidation,
	"INVALID_STOCK":            ErrCodeValidation,
	"INVALID_QUANTITY":         ErrCodeValidation,
	"INVALID_PRODUCT":          ErrCodeValidation,
	"INVALID_VARIANT":          ErrCodeValidation,
	"INVALID_VARIANTS":         ErrCodeValidation,
	"INVALID_ITEMS":            ErrCodeValidation,
	"INVALID_ADDRESS":          ErrCodeValidation,
	"INVALID_USER":             ErrCodeValidation,
	"INVALID_RIDER":            ErrCodeValidation,
	"INVALID_RIDER_ASSIGNMENT": ErrCodeValidation,
	"INVALID_STATUS":           ErrCodeValidation,
	"INVALID_LINE":             ErrCodeValidation,
	"INVALID_REQUEST":          ErrCodeValidation,
	"INVALID_SOURCE_TYPE":      ErrCodeValidation,
	"DUPLICATE_VARIANT":        ErrCodeAlreadyExists,

	"PASSWORD_HASH_ERROR": ErrCodeInternal,
	"INTERNAL_ERROR":      ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// Unknown codes pass through unchanged.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
