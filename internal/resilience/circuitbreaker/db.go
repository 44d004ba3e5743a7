package circuitbreaker

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"newsnotes/internal/observability/metrics"
)

// DBCircuitBreaker puts a circuit breaker and query timing in front of a
// *sql.DB. It satisfies the Querier interface of the postgres repositories.
type DBCircuitBreaker struct {
	cb *CircuitBreaker
	db *sql.DB
}

// DBConfig opens after five straight failures and probes again after 30s.
func DBConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
	}
}

// NewDBCircuitBreaker wraps db using DBConfig.
func NewDBCircuitBreaker(db *sql.DB) *DBCircuitBreaker {
	return NewDBCircuitBreakerWithConfig(db, DBConfig())
}

// NewDBCircuitBreakerWithConfig wraps db using cfg.
func NewDBCircuitBreakerWithConfig(db *sql.DB, cfg Config) *DBCircuitBreaker {
	return &DBCircuitBreaker{cb: New(cfg), db: db}
}

// QueryContext runs a query through the breaker.
func (dcb *DBCircuitBreaker) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer observe(query, time.Now())
	return Do(dcb.cb, func() (*sql.Rows, error) {
		return dcb.db.QueryContext(ctx, query, args...)
	})
}

// ExecContext runs a statement through the breaker.
func (dcb *DBCircuitBreaker) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer observe(query, time.Now())
	return Do(dcb.cb, func() (sql.Result, error) {
		return dcb.db.ExecContext(ctx, query, args...)
	})
}

// QueryRowContext is timed but bypasses the breaker: *sql.Row defers its
// error to Scan, after the breaker would have recorded a success.
func (dcb *DBCircuitBreaker) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer observe(query, time.Now())
	return dcb.db.QueryRowContext(ctx, query, args...)
}

// PingContext checks the connection through the breaker.
func (dcb *DBCircuitBreaker) PingContext(ctx context.Context) error {
	_, err := Do(dcb.cb, func() (struct{}, error) {
		return struct{}{}, dcb.db.PingContext(ctx)
	})
	return err
}

// Stats returns the pool statistics of the wrapped database.
func (dcb *DBCircuitBreaker) Stats() sql.DBStats {
	return dcb.db.Stats()
}

// State returns the current state of the circuit breaker.
func (dcb *DBCircuitBreaker) State() gobreaker.State {
	return dcb.cb.State()
}

// IsOpen reports whether database calls are currently rejected.
func (dcb *DBCircuitBreaker) IsOpen() bool {
	return dcb.cb.IsOpen()
}

// DB returns the unprotected connection, for migrations and shutdown.
func (dcb *DBCircuitBreaker) DB() *sql.DB {
	return dcb.db
}

func observe(query string, start time.Time) {
	metrics.RecordDBQuery(Operation(query), time.Since(start))
}

// Operation returns the SQL verb and table of query, e.g. "select notes",
// for use as a low-cardinality metric label.
func Operation(query string) string {
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 {
		return "unknown"
	}
	verb := fields[0]
	var keyword string
	switch verb {
	case "select", "delete":
		keyword = "from"
	case "insert":
		keyword = "into"
	case "update":
		return verb + " " + strings.Trim(fieldAt(fields, 1), `"`)
	default:
		return verb
	}
	for i, f := range fields {
		if f == keyword {
			return verb + " " + strings.Trim(fieldAt(fields, i+1), `"(`)
		}
	}
	return verb
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
