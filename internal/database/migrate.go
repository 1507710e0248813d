package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// newMigrator builds a migrate instance over the embedded SQL files.
func newMigrator(db *sqlx.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

// RunMigrations applies all pending migrations.
func RunMigrations(db *sqlx.DB, log logger.Interface) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	if upErr := m.Up(); upErr != nil {
		if errors.Is(upErr, migrate.ErrNoChange) {
			log.Info("No pending migrations")
			return nil
		}
		return fmt.Errorf("run migrations: %w", upErr)
	}

	version, _, _ := m.Version()
	log.Info("Migrations applied successfully", "version", version)
	return nil
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(db *sqlx.DB, steps int, log logger.Interface) error {
	if steps < 1 {
		steps = 1
	}

	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	if stepErr := m.Steps(-steps); stepErr != nil {
		if errors.Is(stepErr, migrate.ErrNoChange) {
			log.Info("No migrations to roll back")
			return nil
		}
		return fmt.Errorf("roll back migrations: %w", stepErr)
	}

	log.Info("Migrations rolled back", "steps", steps)
	return nil
}
