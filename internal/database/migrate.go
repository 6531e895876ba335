package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"driveline/internal/config"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies pending goose migrations. It opens its own short-lived
// database/sql connection because goose does not speak pgxpool.
func Migrate(cfg *config.DatabaseConfig, logger *slog.Logger) error {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	if err := MigrateDB(db); err != nil {
		return err
	}

	logger.Info("database migrations applied")
	return nil
}

// MigrateDB applies the embedded migrations on an existing connection.
// Integration tests use this directly against a container database.
func MigrateDB(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
