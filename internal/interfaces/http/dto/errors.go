package dto

import (
	"net/http"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// Codes that only the HTTP layer produces. Domain codes live in package shared.
const (
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
	CodeValidation   = shared.CodeValidation
)

// ErrorCodeHTTPStatus maps every stable error code to its HTTP status
var ErrorCodeHTTPStatus = map[string]int{
	// Authentication
	CodeAuthRequired:              http.StatusUnauthorized,
	shared.CodeInvalidToken:       http.StatusUnauthorized,
	shared.CodeTokenExpired:       http.StatusUnauthorized,
	shared.CodeTokenRevoked:       http.StatusUnauthorized,
	shared.CodeInvalidCredentials: http.StatusUnauthorized,

	// Tenant state and authorization
	shared.CodeUserInactive:   http.StatusForbidden,
	shared.CodeTenantInactive: http.StatusForbidden,
	shared.CodeForbidden:      http.StatusForbidden,

	// Input and business rules
	shared.CodeValidation:               http.StatusBadRequest,
	shared.CodeInvalidState:             http.StatusUnprocessableEntity,
	shared.CodeInvalidReference:         http.StatusUnprocessableEntity,
	shared.CodeIntegrationNotConfigured: http.StatusUnprocessableEntity,
	shared.CodeNotFound:                 http.StatusNotFound,
	shared.CodeConflict:                 http.StatusConflict,
	shared.CodeSyncInProgress:           http.StatusConflict,

	// Infrastructure
	CodeRateLimited:          http.StatusTooManyRequests,
	shared.CodeSyncRejected:  http.StatusBadGateway,
	shared.CodeSyncRetryable: http.StatusServiceUnavailable,
	CodeInternal:             http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code.
// Unknown codes are internal errors.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
