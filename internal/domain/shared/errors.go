package shared

import "errors"

// FieldError describes a single invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError represents a domain-level error carrying a stable machine-readable code
type DomainError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels work with errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a VALIDATION_ERROR with field-level detail
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed",
		Details: []FieldError{{Field: field, Message: message}},
	}
}

// Stable error codes shared by the domain and the HTTP layer
const (
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidState     = "INVALID_STATE"
	CodeInvalidReference = "INVALID_REFERENCE"
	CodeForbidden        = "PERMISSION_DENIED"

	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeTokenRevoked       = "TOKEN_REVOKED"
	CodeUserInactive       = "USER_INACTIVE"
	CodeTenantInactive     = "TENANT_INACTIVE"

	CodeIntegrationNotConfigured = "INTEGRATION_NOT_CONFIGURED"
	CodeSyncInProgress           = "SYNC_IN_PROGRESS"
	CodeSyncRetryable            = "SYNC_RETRYABLE"
	CodeSyncRejected             = "SYNC_REJECTED"
)

// Common domain errors
var (
	ErrNotFound         = NewDomainError(CodeNotFound, "resource not found")
	ErrConflict         = NewDomainError(CodeConflict, "resource already exists")
	ErrInvalidState     = NewDomainError(CodeInvalidState, "operation not allowed in current state")
	ErrInvalidReference = NewDomainError(CodeInvalidReference, "referenced resource does not exist")
	ErrForbidden        = NewDomainError(CodeForbidden, "permission denied")
)

// CodeOf returns the domain error code of err, or "" when err is not a DomainError
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
