package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // database driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file source driver

	"github.com/casefort/LitIntel/internal/config"
)

// Migrator applies schema migrations from a file-source directory.  Binaries
// run Up during startup; the remaining operations back the maintenance CLI.
type Migrator struct {
	dbURL      string
	sourcePath string
}

// NewMigrator builds a Migrator for cfg.  The migration directory comes from
// cfg.MigrationPath, defaulting to the in-repo migrations directory.
func NewMigrator(cfg config.DatabaseConfig) *Migrator {
	path := cfg.MigrationPath
	if path == "" {
		path = "internal/infrastructure/database/postgres/migrations"
	}
	return &Migrator{dbURL: DSN(cfg), sourcePath: "file://" + path}
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	mig, err := migrate.New(m.sourcePath, m.dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

// Up applies all pending migrations.  A schema already at the latest version
// is not an error.
func (m *Migrator) Up() error {
	mig, err := m.open()
	if err != nil {
		return err
	}
	defer mig.Close()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Rollback reverts the most recent steps migrations.
func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be greater than 0, got %d", steps)
	}
	mig, err := m.open()
	if err != nil {
		return err
	}
	defer mig.Close()

	if err := mig.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("no migrations to roll back")
		}
		return fmt.Errorf("failed to rollback %d step(s): %w", steps, err)
	}
	return nil
}

// Status returns the applied migration version and whether a failed
// migration left the schema dirty.  Version 0 means no migrations applied.
func (m *Migrator) Status() (version uint, dirty bool, err error) {
	mig, err := m.open()
	if err != nil {
		return 0, false, err
	}
	defer mig.Close()

	version, dirty, err = mig.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Force sets the schema version without running migrations.  Used only to
// recover from a dirty state after a partially failed migration.
func (m *Migrator) Force(version int) error {
	mig, err := m.open()
	if err != nil {
		return err
	}
	defer mig.Close()

	if err := mig.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}
