package identity

import (
	"context"
	"errors"
	"time"

	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/domain/shared"
	"github.com/vendorhub/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	AllowRegistration bool
}

// AuthService handles login, registration, token refresh and logout
type AuthService struct {
	tenants    identity.TenantRepository
	users      identity.UserRepository
	provision  *TenantService
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	config     AuthServiceConfig
	now        func() time.Time
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. blacklist may be nil,
// in which case logout and refresh rotation cannot revoke tokens early.
func NewAuthService(
	tenants identity.TenantRepository,
	users identity.UserRepository,
	provision *TenantService,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		tenants:    tenants,
		users:      users,
		provision:  provision,
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		now:        time.Now,
		logger:     logger,
	}
}

// Login authenticates a user of the tenant named by the request. The returned
// Attempt names the tenant and user as far as they could be resolved, also on failure.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*SessionResponse, Attempt, error) {
	var attempt Attempt

	tenant, err := s.tenants.FindByCode(ctx, req.TenantCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown tenant", zap.String("tenant_code", req.TenantCode))
			return nil, attempt, identity.ErrInvalidCredentials
		}
		return nil, attempt, err
	}
	attempt.TenantID = &tenant.ID

	user, err := s.users.FindByEmail(ctx, tenant.ID, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown user", zap.String("tenant_id", tenant.ID.String()))
			return nil, attempt, identity.ErrInvalidCredentials
		}
		return nil, attempt, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt",
			zap.String("tenant_id", tenant.ID.String()),
			zap.String("user_id", user.ID.String()))
		return nil, attempt, identity.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, attempt, identity.ErrUserInactive
	}
	if !tenant.IsActive() {
		return nil, attempt, identity.ErrTenantInactive
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{TenantID: tenant.ID, UserID: user.ID})
	if err != nil {
		return nil, attempt, err
	}
	attempt.UserID = &user.ID

	user.RecordLogin(s.now().UTC())
	if err := s.users.Save(ctx, user); err != nil {
		// the session is valid either way
		s.logger.Error("Failed to record login time", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("user_id", user.ID.String()))

	return &SessionResponse{
		Token:  ToTokenResponse(pair),
		User:   ToUserResponse(user),
		Tenant: ToTenantResponse(tenant),
	}, attempt, nil
}

// Register provisions a tenant with its first administrator and signs the
// administrator in. It is rejected unless registration is enabled.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*SessionResponse, Attempt, error) {
	var attempt Attempt
	if !s.config.AllowRegistration {
		return nil, attempt, identity.ErrRegistrationDisabled
	}

	tenant, admin, err := s.provision.Provision(ctx, ProvisionInput{
		TenantCode:  req.TenantCode,
		TenantName:  req.TenantName,
		Region:      req.Region,
		HostingMode: identity.HostingMode(req.HostingMode),
		AdminEmail:  req.Email,
		AdminName:   req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		return nil, attempt, err
	}
	attempt.TenantID = &tenant.ID
	attempt.UserID = &admin.ID

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{TenantID: tenant.ID, UserID: admin.ID})
	if err != nil {
		return nil, attempt, err
	}
	return &SessionResponse{
		Token:  ToTokenResponse(pair),
		User:   ToUserResponse(admin),
		Tenant: ToTenantResponse(tenant),
	}, attempt, nil
}

// Refresh validates a refresh token, re-checks the user and tenant against
// persisted state and rotates the pair. The presented refresh token is revoked.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.logger.Debug("Refresh token rejected", zap.Error(err))
		return nil, TokenError(err)
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	userID, _ := claims.UserUUID()
	claimTenant, _ := claims.TenantUUID()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, identity.ErrInvalidToken
		}
		return nil, err
	}
	if user.TenantID != claimTenant {
		s.logger.Warn("Refresh token tenant does not match the user's tenant",
			zap.String("user_id", user.ID.String()))
		return nil, identity.ErrInvalidToken
	}
	if !user.IsActive() {
		return nil, identity.ErrUserInactive
	}
	tenant, err := s.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, identity.ErrInvalidToken
		}
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, identity.ErrTenantInactive
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{TenantID: tenant.ID, UserID: user.ID})
	if err != nil {
		return nil, err
	}
	s.revoke(ctx, claims)

	resp := ToTokenResponse(pair)
	return &resp, nil
}

// Logout revokes the presented access token
func (s *AuthService) Logout(ctx context.Context, p identity.Principal, claims *auth.Claims) error {
	if s.blacklist == nil {
		s.logger.Warn("Token blacklist disabled; logout cannot revoke the token",
			zap.String("user_id", p.UserID.String()))
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL(s.now())); err != nil {
		return err
	}
	s.logger.Info("User logged out",
		zap.String("tenant_id", p.TenantID.String()),
		zap.String("user_id", p.UserID.String()))
	return nil
}

// Me returns the caller's own user and tenant
func (s *AuthService) Me(ctx context.Context, p identity.Principal) (*CurrentUserResponse, error) {
	user, err := s.users.FindByIDForTenant(ctx, p.TenantID, p.UserID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.tenants.FindByID(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}
	return &CurrentUserResponse{
		User:   ToUserResponse(user),
		Tenant: ToTenantResponse(tenant),
	}, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil {
		return nil
	}
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return err
	}
	if !revoked && claims.IssuedAt != nil {
		revoked, err = s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
		if err != nil {
			return err
		}
	}
	if revoked {
		return identity.ErrTokenRevoked
	}
	return nil
}

func (s *AuthService) revoke(ctx context.Context, claims *auth.Claims) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL(s.now())); err != nil {
		s.logger.Error("Failed to revoke rotated refresh token", zap.String("jti", claims.ID), zap.Error(err))
	}
}

// TokenError maps a token validation failure to its domain error
func TokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return identity.ErrTokenExpired
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return identity.ErrTokenRevoked
	default:
		return identity.ErrInvalidToken
	}
}
