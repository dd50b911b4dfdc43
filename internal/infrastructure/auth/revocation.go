package auth

import (
	"context"
	"time"
)

// TokenBlacklist revokes tokens before they expire. Single tokens are revoked
// by jti on logout and refresh rotation; every token of a user is revoked by
// recording a cut-off time on deactivation or password change.
type TokenBlacklist interface {
	// AddToBlacklist revokes jti for ttl, the token's remaining lifetime
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)

	// InvalidateUser revokes every token issued to userID up to now. ttl
	// should cover the longest token lifetime.
	InvalidateUser(ctx context.Context, userID string, ttl time.Duration) error
	IsUserTokenInvalidated(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// issuedBefore reports whether a token issued at issuedAt falls under a
// cut-off recorded at cutoff. iat has second precision, so a token minted in
// the cut-off second is revoked too.
func issuedBefore(issuedAt time.Time, cutoff int64) bool {
	return issuedAt.Unix() <= cutoff
}
