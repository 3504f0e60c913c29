package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/vulgate-search-api/pkg/schema/config"
)

// ConnectPostgres opens a pooled connection to the pgvector database and
// verifies connectivity. Callers own the returned handle and close it on
// shutdown.
func ConnectPostgres(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	if err := cfg.ValidatePostgres(); err != nil {
		return nil, err
	}

	pgDB, err := sqlx.ConnectContext(ctx, "postgres", cfg.PostgresURI)
	if err != nil {
		return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
	}

	pgDB.SetMaxOpenConns(25)
	pgDB.SetMaxIdleConns(25)
	pgDB.SetConnMaxLifetime(5 * time.Minute)
	pgDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := pgDB.PingContext(ctx); err != nil {
		pgDB.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}

	return pgDB, nil
}
