// Package observability groups the logging, metrics and tracing helpers
// shared by the api and worker binaries.
//
// Subpackages:
//   - logging: slog setup and context propagation
//   - metrics: Prometheus collectors for HTTP traffic and content
//   - tracing: OpenTelemetry provider and HTTP middleware
package observability
