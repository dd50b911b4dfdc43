package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusLocked   UserStatus = "locked"
)

// IsValid checks if the status is known
func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusInactive || s == UserStatusLocked
}

var (
	bcryptCost   = bcrypt.DefaultCost
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	hasLetter    = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
)

// SetPasswordCost sets the bcrypt cost. Call once at startup.
func SetPasswordCost(cost int) {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		bcryptCost = cost
	}
}

// User belongs to exactly one tenant. TenantID is immutable after creation.
type User struct {
	shared.BaseEntity
	TenantID     uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	Role         Role
	Status       UserStatus
	LastLoginAt  *time.Time
}

// NewUser creates an active user inside tenantID
func NewUser(tenantID uuid.UUID, email, displayName, password string, role Role) (*User, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewValidationError("tenant_id", "is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) > 200 || !emailPattern.MatchString(email) {
		return nil, shared.NewValidationError("email", "must be a valid email address")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("role", "must be one of tenant_admin, tenant_user, vendor_user, evaluator")
	}

	u := &User{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		Email:       email,
		DisplayName: strings.TrimSpace(displayName),
		Role:        role,
		Status:      UserStatusActive,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangeRole assigns a new role from the fixed set
func (u *User) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewValidationError("role", "must be one of tenant_admin, tenant_user, vendor_user, evaluator")
	}
	u.Role = role
	u.Touch()
	return nil
}

// ChangeStatus moves the user to a new lifecycle status
func (u *User) ChangeStatus(status UserStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("status", "must be active, inactive or locked")
	}
	u.Status = status
	u.Touch()
	return nil
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}

// IsActive reports whether the user may authenticate
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return shared.NewValidationError("password", "must be 8-72 characters")
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return shared.NewValidationError("password", "must contain at least one letter and one number")
	}
	return nil
}
