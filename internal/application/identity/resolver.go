package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
)

// Resolver maps verified token claims to the live user and tenant.
// Claimed tenant and role are hints; only persisted state decides.
type Resolver struct {
	users   identity.UserRepository
	tenants identity.TenantRepository
}

// NewResolver creates a new Resolver
func NewResolver(users identity.UserRepository, tenants identity.TenantRepository) *Resolver {
	return &Resolver{users: users, tenants: tenants}
}

// Resolve loads the user by id without tenant scope, then its tenant, and fails
// closed: a missing user or a tenant mismatch is an invalid token, an inactive
// user or tenant is forbidden.
func (r *Resolver) Resolve(ctx context.Context, userID, claimedTenantID uuid.UUID) (identity.Principal, error) {
	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return identity.Principal{}, identity.ErrInvalidToken
		}
		return identity.Principal{}, err
	}
	if user.TenantID != claimedTenantID {
		return identity.Principal{}, identity.ErrInvalidToken
	}
	if !user.IsActive() {
		return identity.Principal{}, identity.ErrUserInactive
	}

	tenant, err := r.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return identity.Principal{}, identity.ErrInvalidToken
		}
		return identity.Principal{}, err
	}
	if !tenant.IsActive() {
		return identity.Principal{}, identity.ErrTenantInactive
	}

	return identity.Principal{
		UserID:   user.ID,
		TenantID: user.TenantID,
		Role:     user.Role,
		Email:    user.Email,
	}, nil
}
