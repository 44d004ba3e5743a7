package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnotes/internal/config"
	"newsnotes/internal/resilience/circuitbreaker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStorage_Memory(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = config.StorageMemory

	st, err := OpenStorage(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.Nil(t, st.DB)
	assert.NoError(t, st.Close())

	n, err := st.News.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "sqlite"

	_, err := OpenStorage(context.Background(), cfg, discardLogger())
	assert.ErrorContains(t, err, `unknown storage driver "sqlite"`)
}

func TestPostgresStorage_Breaker(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	st := PostgresStorage(database, true)
	_, ok := st.DB.(*circuitbreaker.DBCircuitBreaker)
	assert.True(t, ok, "DB is %T", st.DB)

	require.NoError(t, st.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_HealthReportsDatabase(t *testing.T) {
	database, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer database.Close()
	mock.ExpectPing()

	cfg := config.Default()
	cfg.Storage.DatabaseURL = "postgres://unused"
	cfg.Session.Secret = "storage-test-session-secret-0123456789"
	srv := New(cfg, PostgresStorage(database, true), Options{Version: "test", Logger: discardLogger()})

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
		Checks  map[string]struct {
			Status  string         `json:"status"`
			Details map[string]any `json:"details"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "test", body.Version)
	assert.Equal(t, "closed", body.Checks["database"].Details["circuit_breaker"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
