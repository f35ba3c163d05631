package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE Postgres reports for a unique constraint failure.
const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// queryRow is a helper method to execute a query that returns a single row
func (r *BaseRepository) queryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return r.Pool.QueryRow(ctx, sql, args...)
}

// query is a helper method to execute a query that returns multiple rows
func (r *BaseRepository) query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return r.Pool.Query(ctx, sql, args...)
}

// exec is a helper method to execute a query that doesn't return rows
func (r *BaseRepository) exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return r.Pool.Exec(ctx, sql, args...)
}

// isUniqueViolation reports whether err is a Postgres unique constraint failure.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
