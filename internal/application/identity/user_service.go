package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService manages the users of the caller's tenant
type UserService struct {
	users     identity.UserRepository
	blacklist auth.TokenBlacklist
	// sessionTTL bounds how long issued tokens may live; used when invalidating a user's sessions
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewUserService creates a new user service. blacklist may be nil.
func NewUserService(users identity.UserRepository, blacklist auth.TokenBlacklist, sessionTTL time.Duration, logger *zap.Logger) *UserService {
	return &UserService{
		users:      users,
		blacklist:  blacklist,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// List lists the users of the caller's tenant
func (s *UserService) List(ctx context.Context, p identity.Principal, filter shared.Filter) (shared.Paginated[UserResponse], error) {
	filter = filter.Normalize()
	users, total, err := s.users.FindAllForTenant(ctx, p.TenantID, filter)
	if err != nil {
		return shared.Paginated[UserResponse]{}, err
	}
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return shared.NewPaginated(out, total, filter), nil
}

// GetByID returns one user of the caller's tenant
func (s *UserService) GetByID(ctx context.Context, p identity.Principal, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Create adds a user to the caller's tenant. Email is unique per tenant.
func (s *UserService) Create(ctx context.Context, p identity.Principal, req CreateUserRequest) (*UserResponse, error) {
	role, ok := identity.ParseRole(req.Role)
	if !ok {
		return nil, shared.NewValidationError("role", "must be one of tenant_admin, tenant_user, vendor_user, evaluator")
	}
	user, err := identity.NewUser(p.TenantID, req.Email, req.DisplayName, req.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return nil, shared.NewDomainError(shared.CodeConflict, "a user with this email already exists")
		}
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Update changes display name, role or status. Administrators cannot change
// their own role or status. Leaving the active status ends the user's sessions.
func (s *UserService) Update(ctx context.Context, p identity.Principal, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.users.FindByIDForTenant(ctx, p.TenantID, id)
	if err != nil {
		return nil, err
	}
	if user.ID == p.UserID && (req.Role != nil || req.Status != nil) {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "you cannot change your own role or status")
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
		user.Touch()
	}
	if req.Role != nil {
		if err := user.ChangeRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}
	wasActive := user.IsActive()
	if req.Status != nil {
		if err := user.ChangeStatus(identity.UserStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if wasActive && !user.IsActive() {
		s.endSessions(ctx, user)
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) endSessions(ctx context.Context, user *identity.User) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.InvalidateUser(ctx, user.ID.String(), s.sessionTTL); err != nil {
		// the tenant resolver still rejects the inactive user on every request
		s.logger.Error("Failed to invalidate sessions", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}
