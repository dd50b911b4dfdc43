package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vendorhub/backend/internal/domain/audit"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.Repository. It only inserts and reads.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append inserts one audit entry
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	return translateError(r.db.WithContext(ctx).Create(models.AuditEntryModelFromDomain(entry)).Error)
}

// List returns a tenant's entries matching q, newest first
func (r *GormAuditRepository) List(ctx context.Context, tenantID uuid.UUID, q audit.Query) ([]audit.Entry, error) {
	q = q.Normalize()

	query := r.db.WithContext(ctx).Model(&models.AuditEntryModel{}).Scopes(tenant.Scope(tenantID))
	if q.Module != "" {
		query = query.Where("module = ?", q.Module)
	}
	if q.Action != "" {
		query = query.Where(`LOWER(action) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(q.Action))+"%")
	}
	if q.From != nil {
		query = query.Where("created_at >= ?", q.From.UTC())
	}
	if q.To != nil {
		query = query.Where("created_at <= ?", q.To.UTC())
	}

	var rows []models.AuditEntryModel
	if err := query.Order("created_at DESC").Limit(q.Limit).Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	entries := make([]audit.Entry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// EnsurePartitions creates the monthly audit partitions for the month of now
// and the one after it. Only PostgreSQL partitions the table; other dialects
// are left alone.
func (r *GormAuditRepository) EnsurePartitions(ctx context.Context, now time.Time) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for _, m := range []time.Time{month, month.AddDate(0, 1, 0)} {
		if err := r.db.WithContext(ctx).Exec("SELECT ensure_audit_partition(?)", m.Format("2006-01-02")).Error; err != nil {
			return err
		}
	}
	return nil
}
