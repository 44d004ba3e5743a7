package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsnotes/internal/handler/http/responsewriter"
	"newsnotes/internal/observability/metrics"
)

// Metrics records every request in the HTTP metrics, labelled with the
// matched route pattern. It expects responsewriter.Track further out.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		status, size := http.StatusOK, 0
		if rw := responsewriter.FromContext(r.Context()); rw != nil {
			status, size = rw.StatusCode(), rw.BytesWritten()
		}
		metrics.RecordHTTPRequest(r.Method, responsewriter.Route(r), strconv.Itoa(status), time.Since(start), size)
	})
}

// MetricsHandler serves the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
