package database

import (
	"context"
	"database/sql"
	"embed"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies embedded SQL migrations via goose. A nil database is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return errx.Wrap(err, "failed to set migration dialect", errx.TypeInternal)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errx.Wrap(err, "failed to run migrations", errx.TypeInternal)
	}
	return nil
}
