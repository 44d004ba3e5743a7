// Package responsewriter records what happened to a request: the status
// code and size of the response and the route pattern the mux matched.
//
// Track installs the record at the top of the middleware chain and
// CaptureRoute fills in the route right around the mux, so middleware that
// sits between them can read the matched pattern even though every layer
// in between passes a copy of the request down.
package responsewriter

import (
	"context"
	"net/http"
)

// ResponseWriter wraps http.ResponseWriter and remembers the status code,
// the body size and the matched route of one request.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode    int
	bytesWritten  int
	headerWritten bool
	route         string
}

type ctxKey struct{}

// Wrap returns a recording ResponseWriter around w.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader records the first status code sent.
func (w *ResponseWriter) WriteHeader(statusCode int) {
	if w.headerWritten {
		return
	}
	w.statusCode = statusCode
	w.headerWritten = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytesWritten += n
	return n, err
}

// StatusCode returns the recorded status, 200 if nothing was written yet.
func (w *ResponseWriter) StatusCode() int { return w.statusCode }

// BytesWritten returns the size of the response body so far.
func (w *ResponseWriter) BytesWritten() int { return w.bytesWritten }

// Route returns the matched ServeMux pattern, or "" before the mux ran or
// when nothing matched.
func (w *ResponseWriter) Route() string { return w.route }

// Unwrap supports http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// FromContext returns the record installed by Track, or nil.
func FromContext(ctx context.Context) *ResponseWriter {
	rw, _ := ctx.Value(ctxKey{}).(*ResponseWriter)
	return rw
}

// Track wraps the response and stores the record in the request context.
func Track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := Wrap(w)
		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), ctxKey{}, rw)))
	})
}

// CaptureRoute copies the pattern set by the ServeMux next into the record.
func CaptureRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		if rw := FromContext(r.Context()); rw != nil {
			rw.route = r.Pattern
		}
	})
}

// Route returns the matched pattern of r: the captured one if the record is
// installed, r.Pattern otherwise. Unmatched requests report "unmatched" so
// that 404 scans share one label value.
func Route(r *http.Request) string {
	if rw := FromContext(r.Context()); rw != nil && rw.route != "" {
		return rw.route
	}
	if r.Pattern != "" {
		return r.Pattern
	}
	return "unmatched"
}
