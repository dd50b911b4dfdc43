package tenant

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/identity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type scopedRecord struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
}

type globalRecord struct {
	ID   uuid.UUID
	Code string
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func principalContext(tenantID uuid.UUID) context.Context {
	return identity.WithPrincipal(context.Background(), identity.Principal{
		UserID:   uuid.New(),
		TenantID: tenantID,
		Role:     identity.RoleTenantUser,
	})
}

func TestScope(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	tenantID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "scoped_records" WHERE "scoped_records"."tenant_id" = $1`)).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	var out []scopedRecord
	require.NoError(t, db.Scopes(Scope(tenantID)).Find(&out).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScope_NilTenant(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()

	var out []scopedRecord
	err := db.Scopes(Scope(uuid.Nil)).Find(&out).Error
	assert.ErrorIs(t, err, ErrTenantIDRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFromContext(t *testing.T) {
	tenantID := uuid.New()
	got, err := FromContext(principalContext(tenantID))
	require.NoError(t, err)
	assert.Equal(t, tenantID, got)

	_, err = FromContext(context.Background())
	assert.ErrorIs(t, err, ErrTenantIDRequired)
}

func TestPrincipalGuard_AddsFilterFromPrincipal(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()
	require.NoError(t, EnableAutoTenantFilter(db, false))

	tenantID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "scoped_records" WHERE name = $1 AND "scoped_records"."tenant_id" = $2`)).
		WithArgs("acme", tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	var out []scopedRecord
	err := db.WithContext(principalContext(tenantID)).Where("name = ?", "acme").Find(&out).Error
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrincipalGuard_KeepsExplicitScope(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()
	require.NoError(t, EnableAutoTenantFilter(db, true))

	tenantID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "scoped_records" WHERE "scoped_records"."tenant_id" = $1`)).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	var out []scopedRecord
	err := db.WithContext(context.Background()).Scopes(Scope(tenantID)).Find(&out).Error
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrincipalGuard_Required(t *testing.T) {
	db, _, mockDB := setupMockDB(t)
	defer mockDB.Close()
	require.NoError(t, EnableAutoTenantFilter(db, true))

	var out []scopedRecord
	err := db.WithContext(context.Background()).Find(&out).Error
	assert.ErrorIs(t, err, ErrTenantIDRequired)
}

func TestPrincipalGuard_SkipsTablesWithoutTenantColumn(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()
	require.NoError(t, EnableAutoTenantFilter(db, true))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "global_records"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}))

	var out []globalRecord
	require.NoError(t, db.WithContext(principalContext(uuid.New())).Find(&out).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrincipalGuard_UpdateIsScoped(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()
	require.NoError(t, EnableAutoTenantFilter(db, false))

	tenantID := uuid.New()
	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "scoped_records" SET "name"=$1 WHERE id = $2 AND "scoped_records"."tenant_id" = $3`)).
		WithArgs("renamed", id, tenantID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	result := db.WithContext(principalContext(tenantID)).
		Model(&scopedRecord{}).
		Where("id = ?", id).
		Update("name", "renamed")
	require.NoError(t, result.Error)
	assert.Zero(t, result.RowsAffected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrincipalGuard_DisableRemovesFilter(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()
	require.NoError(t, EnableAutoTenantFilter(db, true))
	require.NoError(t, DisableAutoTenantFilter(db))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "scoped_records"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name"}))

	var out []scopedRecord
	require.NoError(t, db.WithContext(context.Background()).Find(&out).Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrincipalGuard_RowQueryIsScoped(t *testing.T) {
	db, mock, mockDB := setupMockDB(t)
	defer mockDB.Close()
	require.NoError(t, EnableAutoTenantFilter(db, true))

	tenantID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "scoped_records" WHERE "scoped_records"."tenant_id" = $1`)).
		WithArgs(tenantID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	var n int64
	require.NoError(t, db.WithContext(principalContext(tenantID)).Model(&scopedRecord{}).Count(&n).Error)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
