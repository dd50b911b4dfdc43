package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
)

// LoginRequest authenticates a user inside the tenant named by TenantCode
type LoginRequest struct {
	TenantCode string `json:"tenant_code" binding:"required,max=50"`
	Email      string `json:"email" binding:"required,email,max=200"`
	Password   string `json:"password" binding:"required,max=72"`
}

// RegisterRequest provisions a new tenant together with its first administrator
type RegisterRequest struct {
	TenantCode  string `json:"tenant_code" binding:"required,min=3,max=50"`
	TenantName  string `json:"tenant_name" binding:"required,max=200"`
	Region      string `json:"region" binding:"max=50"`
	HostingMode string `json:"hosting_mode" binding:"omitempty,oneof=shared dedicated"`
	Email       string `json:"email" binding:"required,email,max=200"`
	DisplayName string `json:"display_name" binding:"max=100"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateUserRequest adds a user to the caller's tenant
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email,max=200"`
	DisplayName string `json:"display_name" binding:"max=100"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Role        string `json:"role" binding:"required,oneof=tenant_admin tenant_user vendor_user evaluator"`
}

// UpdateUserRequest changes a user's role, status or display name. Nil fields are left unchanged.
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	Role        *string `json:"role" binding:"omitempty,oneof=tenant_admin tenant_user vendor_user evaluator"`
	Status      *string `json:"status" binding:"omitempty,oneof=active inactive locked"`
}

// ProvisionInput describes a tenant created by an operator or by self-registration
type ProvisionInput struct {
	TenantCode  string
	TenantName  string
	Region      string
	HostingMode identity.HostingMode
	AdminEmail  string
	AdminName   string
	Password    string
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID           `json:"id"`
	TenantID    uuid.UUID           `json:"tenant_id"`
	Email       string              `json:"email"`
	DisplayName string              `json:"display_name"`
	Role        identity.Role       `json:"role"`
	Status      identity.UserStatus `json:"status"`
	LastLoginAt *time.Time          `json:"last_login_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID          uuid.UUID             `json:"id"`
	Code        string                `json:"code"`
	Name        string                `json:"name"`
	Region      string                `json:"region"`
	HostingMode identity.HostingMode  `json:"hosting_mode"`
	Status      identity.TenantStatus `json:"status"`
}

// TokenResponse is the token pair handed to the client
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// SessionResponse is returned by login and registration
type SessionResponse struct {
	Token  TokenResponse  `json:"token"`
	User   UserResponse   `json:"user"`
	Tenant TenantResponse `json:"tenant"`
}

// CurrentUserResponse is returned by /auth/me
type CurrentUserResponse struct {
	User   UserResponse   `json:"user"`
	Tenant TenantResponse `json:"tenant"`
}

// Attempt identifies who an authentication attempt was for, as far as it got.
// Both fields stay nil when the tenant could not be resolved.
type Attempt struct {
	TenantID *uuid.UUID
	UserID   *uuid.UUID
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToTenantResponse converts a domain tenant to a response DTO
func ToTenantResponse(t *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:          t.ID,
		Code:        t.Code,
		Name:        t.Name,
		Region:      t.Region,
		HostingMode: t.HostingMode,
		Status:      t.Status,
	}
}

// ToTokenResponse converts a signed token pair
func ToTokenResponse(p *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:           p.AccessToken,
		RefreshToken:          p.RefreshToken,
		AccessTokenExpiresAt:  p.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: p.RefreshTokenExpiresAt,
		TokenType:             p.TokenType,
	}
}
