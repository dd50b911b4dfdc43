package identity

import (
	"context"

	"github.com/vendorhub/backend/internal/domain/identity"
)

// TransactionScope runs tenant provisioning atomically: the tenant row and its
// first administrator are committed together or not at all.
type TransactionScope interface {
	// Execute runs fn within a database transaction. An error from fn rolls it back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories share the underlying transaction
type TransactionalRepositories interface {
	TenantRepo() identity.TenantRepository
	UserRepo() identity.UserRepository
}

// NoOpTransactionScope runs fn directly against the given repositories
type NoOpTransactionScope struct {
	tenants identity.TenantRepository
	users   identity.UserRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(tenants identity.TenantRepository, users identity.UserRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{tenants: tenants, users: users}
}

// Execute runs fn without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// TenantRepo returns the tenant repository
func (s *NoOpTransactionScope) TenantRepo() identity.TenantRepository {
	return s.tenants
}

// UserRepo returns the user repository
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository {
	return s.users
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
