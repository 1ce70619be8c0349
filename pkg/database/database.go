package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/config"
	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DSN builds a lib/pq connection string.
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Connect opens a pooled postgres connection and pings it.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", DSN(cfg))
	if err != nil {
		return nil, errx.Wrap(err, "failed to connect to database", errx.TypeInternal)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}
