package dto

import "net/http"

// Error code constants, format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
	ErrCodeResourceInUse = "ERR_RESOURCE_IN_USE"
)

// Business rule error codes
const (
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
	ErrCodeDuplicateRequest  = "ERR_DUPLICATE_REQUEST"
	ErrCodeUnsupportedFormat = "ERR_UNSUPPORTED_FORMAT"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeResourceInUse: http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeDuplicateRequest:  http.StatusConflict,
	ErrCodeUnsupportedFormat: http.StatusBadRequest,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping normalizes domain error codes to the wire format
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":           ErrCodeNotFound,
	"ALREADY_EXISTS":      ErrCodeAlreadyExists,
	"INVALID_INPUT":       ErrCodeInvalidInput,
	"INVALID_STATE":       ErrCodeInvalidState,
	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"FORBIDDEN":           ErrCodeForbidden,
	"INVALID_CREDENTIALS": ErrCodeInvalidCredentials,
	"DUPLICATE_REQUEST":   ErrCodeDuplicateRequest,
	"UNSUPPORTED_FORMAT":  ErrCodeUnsupportedFormat,
	"RESOURCE_IN_USE":     ErrCodeResourceInUse,
}

// businessRuleStatus is the wire status of uncategorized domain errors.
// Named domain codes like INVALID_SKU or INVALID_FILTER_INPUT fall through
// here as bad requests with their original code preserved.
var businessRuleCodes = map[string]int{
	"INVALID_SKU":          http.StatusBadRequest,
	"INVALID_NAME":         http.StatusBadRequest,
	"INVALID_PRICE":        http.StatusBadRequest,
	"INVALID_RATE":         http.StatusBadRequest,
	"INVALID_QUANTITY":     http.StatusBadRequest,
	"INVALID_DISCOUNT":     http.StatusBadRequest,
	"INVALID_VALUE":        http.StatusBadRequest,
	"INVALID_OPTIONS":      http.StatusBadRequest,
	"INVALID_EMAIL":        http.StatusBadRequest,
	"WEAK_PASSWORD":        http.StatusBadRequest,
	"INVALID_BRAND":        http.StatusBadRequest,
	"INVALID_CATEGORY":     http.StatusBadRequest,
	"INVALID_PARENT":       http.StatusBadRequest,
	"INVALID_REGION":       http.StatusBadRequest,
	"INVALID_WAREHOUSE":    http.StatusBadRequest,
	"INVALID_ATTRIBUTE":    http.StatusBadRequest,
	"INVALID_FILTER_INPUT": http.StatusBadRequest,
	"INVALID_FIELD_INPUT":  http.StatusBadRequest,
	"STORAGE_DISABLED":     http.StatusNotImplemented,
}

// ResolveDomainCode maps a domain error code to its wire code and HTTP
// status. Codes without an explicit mapping keep their original name and
// answer 422.
func ResolveDomainCode(code string) (string, int) {
	if wire, ok := domainErrorCodeMapping[code]; ok {
		return wire, GetHTTPStatus(wire)
	}
	if status, ok := businessRuleCodes[code]; ok {
		return code, status
	}
	return code, http.StatusUnprocessableEntity
}
