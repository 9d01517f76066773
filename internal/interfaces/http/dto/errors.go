package dto

import "net/http"

// Error codes surfaced by the API. Domain errors carry these codes
// directly; the table below decides the HTTP status for each.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"

	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       = "INVALID_TOKEN"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"

	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"

	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeInvalidName     = "INVALID_NAME"
	ErrCodeInvalidBarcode  = "INVALID_BARCODE"
	ErrCodeInvalidDate     = "INVALID_DATE"
	ErrCodeInvalidPrice    = "INVALID_PRICE"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeInvalidNotes    = "INVALID_NOTES"
	ErrCodeInvalidUsername = "INVALID_USERNAME"
	ErrCodeInvalidPassword = "INVALID_PASSWORD"

	ErrCodeInvalidState = "INVALID_STATE"
	ErrCodeHasPurchases = "HAS_PURCHASES"
	ErrCodeLastAdmin    = "LAST_ADMIN"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeInvalidToken:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,

	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidName:     http.StatusBadRequest,
	ErrCodeInvalidBarcode:  http.StatusBadRequest,
	ErrCodeInvalidDate:     http.StatusBadRequest,
	ErrCodeInvalidPrice:    http.StatusBadRequest,
	ErrCodeInvalidQuantity: http.StatusBadRequest,
	ErrCodeInvalidNotes:    http.StatusBadRequest,
	ErrCodeInvalidUsername: http.StatusBadRequest,
	ErrCodeInvalidPassword: http.StatusBadRequest,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeHasPurchases: http.StatusUnprocessableEntity,
	ErrCodeLastAdmin:    http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 so that unexpected failures are never
// mistaken for client errors.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
