package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/infrastructure/config"
)

// TokenType tells access and refresh tokens apart
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims carries identity hints only. Tenant and role are re-resolved from
// persisted state on every request; nothing here is trusted for authorization.
type Claims struct {
	jwt.RegisteredClaims
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	TokenType TokenType `json:"token_type"`
}

// Validate is called by the parser after the registered claims pass
func (c *Claims) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing jti", ErrInvalidClaims)
	}
	if _, err := c.TenantUUID(); err != nil {
		return fmt.Errorf("%w: tenant_id", ErrInvalidClaims)
	}
	if _, err := c.UserUUID(); err != nil {
		return fmt.Errorf("%w: user_id", ErrInvalidClaims)
	}
	return nil
}

// TenantUUID parses the tenant hint
func (c *Claims) TenantUUID() (uuid.UUID, error) {
	return uuid.Parse(c.TenantID)
}

// UserUUID parses the subject user
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// ExpiresAtTime returns the exp claim, zero when absent
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// RemainingTTL is how long the token stays valid after now, never negative.
// A revocation entry only needs to live this long.
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	return max(c.ExpiresAtTime().Sub(now), 0)
}

// TokenPair is returned by login and refresh
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// GenerateTokenInput names the user a pair is minted for
type GenerateTokenInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// JWTService mints and verifies HS256 tokens. Access and refresh tokens use
// separate keys when a refresh secret is configured.
type JWTService struct {
	keys   map[TokenType]signingKey
	issuer string
	now    func() time.Time
}

// NewJWTService creates a JWTService from cfg
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refresh := cfg.RefreshSecret
	if refresh == "" {
		refresh = cfg.Secret
	}
	return &JWTService{
		keys: map[TokenType]signingKey{
			TokenTypeAccess:  {secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpiration},
			TokenTypeRefresh: {secret: []byte(refresh), ttl: cfg.RefreshTokenExpiration},
		},
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// AccessTokenExpiration returns the access token lifetime
func (s *JWTService) AccessTokenExpiration() time.Duration {
	return s.keys[TokenTypeAccess].ttl
}

// GenerateTokenPair mints an access and a refresh token with distinct ids
func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	if input.TenantID == uuid.Nil || input.UserID == uuid.Nil {
		return nil, ErrInvalidClaims
	}
	issued := s.now()

	access, accessExp, err := s.mint(input, TokenTypeAccess, issued)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.mint(input, TokenTypeRefresh, issued)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  accessExp,
		RefreshTokenExpiresAt: refreshExp,
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) mint(input GenerateTokenInput, typ TokenType, issued time.Time) (string, time.Time, error) {
	key := s.keys[typ]
	claims := s.claimsFor(input, typ, issued, key.ttl)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, claims.ExpiresAtTime(), nil
}

func (s *JWTService) claimsFor(input GenerateTokenInput, typ TokenType, issued time.Time, ttl time.Duration) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(ttl)),
		},
		TenantID:  input.TenantID.String(),
		UserID:    input.UserID.String(),
		TokenType: typ,
	}
}

// ValidateAccessToken verifies an access token
func (s *JWTService) ValidateAccessToken(raw string) (*Claims, error) {
	return s.verify(raw, TokenTypeAccess)
}

// ValidateRefreshToken verifies a refresh token
func (s *JWTService) ValidateRefreshToken(raw string) (*Claims, error) {
	return s.verify(raw, TokenTypeRefresh)
}

func (s *JWTService) verify(raw string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	secret := s.keys[want].secret
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case errors.Is(err, ErrInvalidClaims):
		return nil, ErrInvalidClaims
	default:
		return nil, ErrInvalidToken
	}

	if claims.TokenType != want {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}
