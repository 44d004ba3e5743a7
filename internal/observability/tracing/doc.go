// Package tracing wires OpenTelemetry into the HTTP server.
//
// Setup installs the tracer provider; Middleware opens one server span per
// request, continues incoming W3C trace context and echoes the trace id in
// the X-Trace-Id response header.
package tracing
