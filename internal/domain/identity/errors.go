package identity

import "github.com/vendorhub/backend/internal/domain/shared"

// Authentication failures. Messages never say which part of a credential was wrong.
var (
	ErrInvalidCredentials   = shared.NewDomainError(shared.CodeInvalidCredentials, "invalid tenant, email or password")
	ErrInvalidToken         = shared.NewDomainError(shared.CodeInvalidToken, "invalid token")
	ErrTokenExpired         = shared.NewDomainError(shared.CodeTokenExpired, "token has expired")
	ErrTokenRevoked         = shared.NewDomainError(shared.CodeTokenRevoked, "token has been revoked")
	ErrUserInactive         = shared.NewDomainError(shared.CodeUserInactive, "user account is not active")
	ErrTenantInactive       = shared.NewDomainError(shared.CodeTenantInactive, "tenant is not active")
	ErrRegistrationDisabled = shared.NewDomainError(shared.CodeForbidden, "self-registration is disabled")
)
