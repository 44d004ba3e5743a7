// Package logging provides structured logging utilities with context propagation.
//
// Example usage:
//
//	logger := logging.NewLogger()
//	logger.Info("application started", slog.String("version", "1.0"))
//
//	func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logging.FromContext(r.Context()).Info("processing request")
//	}
package logging
