// Package migration applies the embedded SQL schema with golang-migrate.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Migrator moves a PostgreSQL schema between versions of a migration set
type Migrator struct {
	engine *migrate.Migrate
	log    *zap.Logger
}

// New opens the migration set in source against db. The schema_migrations
// table is created on first use.
func New(db *sql.DB, source fs.FS, log *zap.Logger) (*Migrator, error) {
	target, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration target: %w", err)
	}
	files, err := iofs.New(source, ".")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}
	engine, err := migrate.NewWithInstance("iofs", files, "postgres", target)
	if err != nil {
		return nil, fmt.Errorf("migration engine: %w", err)
	}

	log = log.Named("migrate")
	engine.Log = engineLog{log: log}
	return &Migrator{engine: engine, log: log}, nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	return m.run("up", m.engine.Up)
}

// Down reverts every applied migration
func (m *Migrator) Down() error {
	m.log.Warn("Reverting the whole schema")
	return m.run("down", m.engine.Down)
}

// Steps moves n versions forward, or back when n is negative
func (m *Migrator) Steps(n int) error {
	return m.run(fmt.Sprintf("step %+d", n), func() error { return m.engine.Steps(n) })
}

// Force records version as applied without running anything. It clears the
// dirty flag left by a migration that failed halfway.
func (m *Migrator) Force(version int) error {
	if err := m.engine.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	m.log.Warn("Schema version forced", zap.Int("version", version))
	return nil
}

// Version reports the applied version; 0 means an empty schema
func (m *Migrator) Version() (uint, bool, error) {
	v, dirty, err := m.engine.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return v, dirty, nil
}

// Close releases the source and the driver
func (m *Migrator) Close() error {
	srcErr, dbErr := m.engine.Close()
	return errors.Join(srcErr, dbErr)
}

// run executes op and logs where the schema ended up. Having nothing to do
// is not an error.
func (m *Migrator) run(label string, op func() error) error {
	before, _, err := m.Version()
	if err != nil {
		return err
	}

	if err := op(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s from version %d: %w", label, before, err)
	}

	after, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if after == before {
		m.log.Info("Schema already current", zap.String("op", label), zap.Uint("version", after))
		return nil
	}
	m.log.Info("Schema migrated",
		zap.String("op", label),
		zap.Uint("from", before),
		zap.Uint("to", after),
		zap.Bool("dirty", dirty))
	return nil
}

// engineLog forwards golang-migrate's progress lines to zap at debug level
type engineLog struct {
	log *zap.Logger
}

func (l engineLog) Printf(format string, v ...any) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l engineLog) Verbose() bool {
	return l.log.Core().Enabled(zap.DebugLevel)
}
