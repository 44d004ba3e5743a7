package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer used by this service.
const InstrumentationName = "newsnotes"

var tracer = otel.Tracer(InstrumentationName)

// GetTracer returns the package tracer.
func GetTracer() trace.Tracer {
	return tracer
}

// Setup installs an SDK tracer provider and the W3C trace-context
// propagator as globals. Additional span processors (exporters) may be
// passed in; without any, spans are still created so trace ids reach the
// logs and the X-Trace-Id header.
func Setup(processors ...sdktrace.SpanProcessor) func(context.Context) error {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	tracer = tp.Tracer(InstrumentationName)

	return tp.Shutdown
}
