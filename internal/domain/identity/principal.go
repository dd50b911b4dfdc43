package identity

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the identity resolved from persisted state for the current request.
// It is the only source of tenant scope downstream of the tenant resolver.
type Principal struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Role     Role
	Email    string
}

type principalKey struct{}

// WithPrincipal attaches the resolved principal to ctx
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the resolved principal, if any
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
