package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/schemas"
)

// Migrate applies every pending migration for the database's driver.
func Migrate(db *sqlx.DB, logger *slog.Logger) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("database schema is up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}
	logger.Info("database migrated", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}

func newMigrate(db *sqlx.DB) (*migrate.Migrate, error) {
	driverName := db.DriverName()
	source, err := iofs.New(schemas.Migrations, "migrations/"+driverName)
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	var target migratedb.Driver
	switch driverName {
	case config.DriverMySQL:
		target, err = migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	case config.DriverSQLite:
		target, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}
	if err != nil {
		return nil, fmt.Errorf("open migration target: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, target)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
