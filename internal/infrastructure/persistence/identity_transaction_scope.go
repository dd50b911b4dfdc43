package persistence

import (
	"context"

	appidentity "github.com/vendorhub/backend/internal/application/identity"
	"github.com/vendorhub/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// GormIdentityTransactionScope implements appidentity.TransactionScope with a GORM transaction
type GormIdentityTransactionScope struct {
	db *gorm.DB
}

// NewGormIdentityTransactionScope creates a new GormIdentityTransactionScope
func NewGormIdentityTransactionScope(db *gorm.DB) *GormIdentityTransactionScope {
	return &GormIdentityTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormIdentityTransactionScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return translateError(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormIdentityRepositories{tx: tx})
	}))
}

type gormIdentityRepositories struct {
	tx *gorm.DB
}

func (r *gormIdentityRepositories) TenantRepo() identity.TenantRepository {
	return NewGormTenantRepository(r.tx)
}

func (r *gormIdentityRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

var _ appidentity.TransactionScope = (*GormIdentityTransactionScope)(nil)
var _ appidentity.TransactionalRepositories = (*gormIdentityRepositories)(nil)
