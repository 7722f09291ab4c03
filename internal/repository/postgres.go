package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const pgUniqueViolation = "23505"

var postgresDialect = dialect{
	name:        "postgres",
	placeholder: dollarPlaceholder,
	uniqueViolation: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
	},
}

// NewPostgresStore connects to an existing PostgreSQL database. The schema
// is expected to be managed outside the backend.
func NewPostgresStore(ctx context.Context, dsn string) (*SQLStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &SQLStore{db: db, dialect: postgresDialect, onClose: pool.Close}, nil
}

// IsPostgresDSN reports whether dsn names a PostgreSQL database.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open returns the store matching the DSN scheme: PostgreSQL for
// postgres:// URLs and SQLite otherwise.
func Open(ctx context.Context, dsn string) (*SQLStore, error) {
	if IsPostgresDSN(dsn) {
		return NewPostgresStore(ctx, dsn)
	}
	return NewSQLiteStore(dsn)
}
