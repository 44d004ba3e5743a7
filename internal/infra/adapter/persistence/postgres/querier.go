// Package postgres provides PostgreSQL implementations of the repository interfaces.
// Queries use $n placeholders and go through database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"newsnotes/internal/repository"
)

// Querier is the subset of *sql.DB used by the repositories.
// circuitbreaker.DBCircuitBreaker satisfies it as well.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// mapUniqueViolation turns a unique constraint violation into repository.ErrDuplicate.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

func count(ctx context.Context, db Querier, query string) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
