package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database is the shared GORM handle plus its connection pool
type Database struct {
	DB   *gorm.DB
	pool *sql.DB
}

// NewDatabase connects to PostgreSQL, sizes the pool from cfg and pings once.
// A nil logger silences SQL logging.
func NewDatabase(cfg *config.DatabaseConfig, log gormlogger.Interface) (*Database, error) {
	db, err := Open(postgres.Open(cfg.DSN()), log)
	if err != nil {
		return nil, fmt.Errorf("open postgres %s: %w", cfg.DBName, err)
	}

	db.pool.SetMaxOpenConns(cfg.MaxOpenConns)
	db.pool.SetMaxIdleConns(cfg.MaxIdleConns)
	db.pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	db.pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres %s: %w", cfg.DBName, err)
	}
	return db, nil
}

// Open wraps any dialector with the repository conventions: UTC timestamps,
// constraint errors translated by GORM and the tenant guard installed.
func Open(dialector gorm.Dialector, log gormlogger.Interface) (*Database, error) {
	if log == nil {
		log = gormlogger.Discard
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 log,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	if err := tenant.EnableAutoTenantFilter(db, false); err != nil {
		return nil, fmt.Errorf("install tenant guard: %w", err)
	}
	pool, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &Database{DB: db, pool: pool}, nil
}

// Ping reports whether the database answers
func (d *Database) Ping() error {
	return d.pool.Ping()
}

// Close closes the pool
func (d *Database) Close() error {
	return d.pool.Close()
}

// PoolCollector exports sql.DBStats of the pool, labelled with dbName
func (d *Database) PoolCollector(dbName string) prometheus.Collector {
	return collectors.NewDBStatsCollector(d.pool, dbName)
}
