package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/trace"

	"newsnotes/internal/handler/http/requestid"
	"newsnotes/internal/handler/http/respond"
	"newsnotes/internal/handler/http/responsewriter"
	"newsnotes/internal/observability/logging"
)

// Middleware decorates a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mw to h so that mw[0] is the outermost layer.
func Chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// Logging stores a request-scoped logger carrying the request and trace
// IDs in the context and logs every finished request with its route,
// status and duration. It expects responsewriter.Track further out.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logging.WithRequestID(r.Context(), logger)
			if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
				reqLogger = reqLogger.With(slog.String("trace_id", sc.TraceID().String()))
			}
			r = r.WithContext(logging.WithLogger(r.Context(), reqLogger))

			next.ServeHTTP(w, r)

			status, size := http.StatusOK, 0
			if rw := responsewriter.FromContext(r.Context()); rw != nil {
				status, size = rw.StatusCode(), rw.BytesWritten()
			}
			duration := time.Since(start)

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			reqLogger.Log(r.Context(), level, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", responsewriter.Route(r)),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", status),
				slog.Int("bytes", size),
				slog.Duration("duration", duration),
			)
		})
	}
}

// Recover turns a panic into a 500 response and logs the stack.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logging.FromContext(r.Context()).Error("panic recovered",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			respond.SafeError(w, http.StatusInternalServerError, errors.New("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}

// LimitRequestBody caps request bodies at maxBytes. Form parsing past the
// limit fails and the handlers answer 400.
func LimitRequestBody(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxBytes > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestTimeout puts a deadline of d on the request context. Storage
// calls made with that context give up once it passes.
func RequestTimeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
