package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/audit"
)

func appendEntry(t *testing.T, repo *GormAuditRepository, tenantID *uuid.UUID, action string, at time.Time) {
	t.Helper()
	e, err := audit.NewEntry(audit.EntryInput{
		TenantID:   tenantID,
		Action:     action,
		StatusCode: 200,
		Detail:     map[string]any{"password": "hunter2", "name": "x"},
	})
	require.NoError(t, err)
	e.CreatedAt = at
	require.NoError(t, repo.Append(context.Background(), e))
}

func TestGormAuditRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	tenantA := uuid.New()
	tenantB := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	appendEntry(t, repo, &tenantA, "vendor.create", base)
	appendEntry(t, repo, &tenantA, "procurement.purchase_order.create", base.Add(time.Hour))
	appendEntry(t, repo, &tenantA, "procurement.purchase_order.sync", base.Add(2*time.Hour))
	appendEntry(t, repo, &tenantB, "vendor.create", base)
	appendEntry(t, repo, nil, "auth.login", base)

	t.Run("newest first and tenant scoped", func(t *testing.T) {
		entries, err := repo.List(ctx, tenantA, audit.Query{})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "procurement.purchase_order.sync", entries[0].Action)
		assert.Equal(t, "vendor.create", entries[2].Action)
	})

	t.Run("module and action filters", func(t *testing.T) {
		entries, err := repo.List(ctx, tenantA, audit.Query{Module: "procurement", Action: "SYNC"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "procurement.purchase_order.sync", entries[0].Action)
	})

	t.Run("time window and limit", func(t *testing.T) {
		from := base.Add(30 * time.Minute)
		entries, err := repo.List(ctx, tenantA, audit.Query{From: &from, Limit: 1})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "procurement.purchase_order.sync", entries[0].Action)
	})

	t.Run("detail is stored redacted", func(t *testing.T) {
		entries, err := repo.List(ctx, tenantB, audit.Query{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, audit.RedactedPlaceholder, entries[0].Detail["password"])
		assert.Equal(t, "x", entries[0].Detail["name"])
	})
}

func TestGormAuditRepository_ActionFilterIsLiteral(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormAuditRepository(db)
	tenantID := uuid.New()
	now := time.Now().UTC()

	appendEntry(t, repo, &tenantID, "admin.user.create", now)
	appendEntry(t, repo, &tenantID, "procurement.purchase_order.create", now)

	entries, err := repo.List(context.Background(), tenantID, audit.Query{Action: "e_o"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "procurement.purchase_order.create", entries[0].Action)

	entries, err = repo.List(context.Background(), tenantID, audit.Query{Action: "user_create"})
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = repo.List(context.Background(), tenantID, audit.Query{Action: "%"})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGormAuditRepository_EnsurePartitionsSkipsNonPostgres(t *testing.T) {
	repo := NewGormAuditRepository(newTestDB(t))
	assert.NoError(t, repo.EnsurePartitions(context.Background(), time.Now()))
}
