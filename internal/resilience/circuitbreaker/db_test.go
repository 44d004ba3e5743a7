package circuitbreaker

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
)

func TestDBCircuitBreaker_QueryContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer func() { _ = db.Close() }()

	dcb := NewDBCircuitBreaker(db)
	mock.ExpectQuery("SELECT (.+) FROM notes").
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug"}).AddRow(1, "note"))

	rows, err := dcb.QueryContext(context.Background(), "SELECT id, slug FROM notes WHERE author_id = $1", 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		t.Fatal("expected a row")
	}
	var id int
	var slug string
	if err := rows.Scan(&id, &slug); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if id != 1 || slug != "note" {
		t.Errorf("got id=%d slug=%s", id, slug)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestDBCircuitBreaker_ExecContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer func() { _ = db.Close() }()

	dcb := NewDBCircuitBreaker(db)
	mock.ExpectExec("DELETE FROM comments").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := dcb.ExecContext(context.Background(), "DELETE FROM comments WHERE id = $1", 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	n, err := res.RowsAffected()
	if err != nil || n != 1 {
		t.Errorf("expected 1 row affected, got %d (%v)", n, err)
	}
}

func TestDBCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer func() { _ = db.Close() }()

	dcb := NewDBCircuitBreaker(db)
	dbErr := errors.New("connection refused")
	for i := 0; i < 5; i++ {
		mock.ExpectQuery("SELECT").WillReturnError(dbErr)
	}
	for i := 0; i < 5; i++ {
		if _, err := dcb.QueryContext(context.Background(), "SELECT 1"); !errors.Is(err, dbErr) {
			t.Fatalf("attempt %d: expected db error, got %v", i, err)
		}
	}

	if dcb.State() != gobreaker.StateOpen {
		t.Fatalf("expected Open, got %s", dcb.State())
	}
	if _, err := dcb.QueryContext(context.Background(), "SELECT 1"); !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
	if err := dcb.PingContext(context.Background()); !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen from ping, got %v", err)
	}
}

func TestDBCircuitBreaker_QueryRowContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	defer func() { _ = db.Close() }()

	dcb := NewDBCircuitBreaker(db)
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	var n int
	if err := dcb.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM news").Scan(&n); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4, got %d", n)
	}
	if dcb.DB() != db {
		t.Error("DB must return the wrapped connection")
	}
}

func TestOperation(t *testing.T) {
	tests := map[string]string{
		"SELECT id FROM notes WHERE slug = $1":        "select notes",
		"  select count(*) from news":                 "select news",
		"INSERT INTO comments (news_id) VALUES ($1)": "insert comments",
		"UPDATE notes SET title = $1":                 "update notes",
		"DELETE FROM users WHERE id = $1":             "delete users",
		"CREATE TABLE IF NOT EXISTS x (id int)":       "create",
		"":                                            "unknown",
	}
	for query, want := range tests {
		if got := Operation(query); got != want {
			t.Errorf("Operation(%q) = %q, want %q", query, got, want)
		}
	}
}
