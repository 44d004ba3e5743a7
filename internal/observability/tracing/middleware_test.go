package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	shutdown := Setup(rec)
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return rec
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestMiddleware_NamesSpanAfterRoutePattern(t *testing.T) {
	rec := setupRecorder(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /news/{id}/{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := serve(Middleware(mux), httptest.NewRequest(http.MethodGet, "/news/7/", nil))
	assert.Len(t, rr.Header().Get("X-Trace-Id"), 32)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /news/{id}/{$}", spans[0].Name())

	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "/news/7/", attrs["http.path"])
	assert.EqualValues(t, 200, attrs["http.status_code"])
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	rec := setupRecorder(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	serve(Middleware(http.NotFoundHandler()), req)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext().TraceID().String())
}

func TestMiddleware_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   codes.Code
	}{
		{name: "server error", status: http.StatusInternalServerError, want: codes.Error},
		{name: "not found is not an error", status: http.StatusNotFound, want: codes.Unset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := setupRecorder(t)
			h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(tt.status) })

			serve(Middleware(h), httptest.NewRequest(http.MethodGet, "/x", nil))

			spans := rec.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.want, spans[0].Status().Code)
		})
	}
}

var _ sdktrace.SpanProcessor = (*tracetest.SpanRecorder)(nil)
