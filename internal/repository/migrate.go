package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

func setupGoose() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return nil
}

// Migrate applies all pending schema migrations.
func Migrate(db *sql.DB) error {
	return RunMigration(context.Background(), db, "up")
}

// RunMigration runs a goose command (up, down, status, version, redo...) against the embedded migrations.
func RunMigration(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, "migrations", args...); err != nil {
		return fmt.Errorf("failed to run migration %q: %w", command, err)
	}
	return nil
}
