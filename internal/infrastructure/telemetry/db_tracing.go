package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"github.com/vendorhub/backend/internal/domain/identity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InstrumentDB registers the otelgorm plugin plus a callback, ordered after the
// plugin opens its span, that tags every statement span with the current tenant.
// Query variables are never attached to spans.
func InstrumentDB(db *gorm.DB, enabled bool, logger *zap.Logger) error {
	if !enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	if err := db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName("postgresql"),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		return fmt.Errorf("register otelgorm: %w", err)
	}

	cb := db.Callback()
	registrations := []struct {
		name     string
		register func(string, func(*gorm.DB)) error
	}{
		{"vendorhub:trace_tenant_create", cb.Create().Before("gorm:create").After("otel:before_create").Register},
		{"vendorhub:trace_tenant_query", cb.Query().Before("gorm:query").After("otel:before_query").Register},
		{"vendorhub:trace_tenant_update", cb.Update().Before("gorm:update").After("otel:before_update").Register},
		{"vendorhub:trace_tenant_delete", cb.Delete().Before("gorm:delete").After("otel:before_delete").Register},
		{"vendorhub:trace_tenant_row", cb.Row().Before("gorm:row").After("otel:before_row").Register},
	}
	for _, r := range registrations {
		if err := r.register(r.name, tagTenant); err != nil {
			return fmt.Errorf("register %s: %w", r.name, err)
		}
	}

	logger.Info("Database tracing enabled")
	return nil
}

func tagTenant(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if p, ok := identity.PrincipalFromContext(ctx); ok {
		span.SetAttributes(attribute.String("tenant.id", p.TenantID.String()))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
}
