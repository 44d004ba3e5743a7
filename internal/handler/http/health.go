// Package http holds the site-wide HTTP plumbing: the middleware chain,
// the request metrics and the health endpoints. The pages themselves live
// in the news, notes and auth subpackages.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"newsnotes/internal/handler/http/respond"
	"newsnotes/internal/observability/metrics"
)

// Database is what the health checks need from the storage connection.
// Both *sql.DB and circuitbreaker.DBCircuitBreaker satisfy it.
type Database interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

type breakerState interface {
	State() gobreaker.State
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Check statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthHandler reports the state of the storage. A nil DB means the
// in-memory storage, which is always healthy.
type HealthHandler struct {
	DB      Database
	Version string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{}
	if h.DB == nil {
		checks["storage"] = CheckStatus{Status: StatusHealthy, Message: "in-memory"}
	} else {
		checks["database"] = h.checkDatabase(ctx)
	}

	status, code := StatusHealthy, http.StatusOK
	for _, c := range checks {
		if c.Status == StatusUnhealthy {
			status, code = StatusUnhealthy, http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	details := map[string]any{}
	if b, ok := h.DB.(breakerState); ok {
		details["circuit_breaker"] = b.State().String()
	}

	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: StatusUnhealthy, Message: respond.SanitizeError(err), Details: details}
	}

	stats := h.DB.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
	details["max_open_connections"] = stats.MaxOpenConnections
	details["open_connections"] = stats.OpenConnections
	details["in_use"] = stats.InUse
	details["idle"] = stats.Idle
	details["wait_count"] = stats.WaitCount
	details["wait_duration_ms"] = stats.WaitDuration.Milliseconds()

	if stats.MaxOpenConnections > 0 {
		utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = utilization
		if utilization >= 80.0 {
			return CheckStatus{Status: StatusDegraded, Message: "connection pool utilization above 80%", Details: details}
		}
	}
	return CheckStatus{Status: StatusHealthy, Details: details}
}

// ReadyHandler answers the readiness probe: 200 once the storage answers.
type ReadyHandler struct {
	DB Database
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			http.Error(w, "database not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers the liveness probe.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("alive"))
}

// RegisterHealth mounts /health, /ready and /live.
func RegisterHealth(mux *http.ServeMux, db Database, version string) {
	mux.Handle("GET /health", &HealthHandler{DB: db, Version: version})
	mux.Handle("GET /ready", &ReadyHandler{DB: db})
	mux.Handle("GET /live", LiveHandler{})
}
