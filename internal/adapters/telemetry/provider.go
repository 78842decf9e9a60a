// Package telemetry implements ports.Tracer on top of OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/condalock/internal/core/ports"
)

// Option configures an OTelTracer.
type Option func(*[]sdktrace.TracerProviderOption)

// WithSpanProcessor registers an additional span processor.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(opts *[]sdktrace.TracerProviderOption) {
		*opts = append(*opts, sdktrace.WithSpanProcessor(sp))
	}
}

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
// It owns a private provider so the global OTel state is left untouched.
type OTelTracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
// Finished spans are reported to log at debug level.
func NewOTelTracer(name string, log ports.Logger, opts ...Option) *OTelTracer {
	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(NewStepReporter(log)),
	}
	for _, opt := range opts {
		opt(&providerOpts)
	}

	provider := sdktrace.NewTracerProvider(providerOpts...)
	return &OTelTracer{
		provider: provider,
		tracer:   provider.Tracer(name),
	}
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, ports.Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &OTelSpan{span: span}
}

// Shutdown flushes pending spans and stops the provider.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span trace.Span
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records err on the span and marks it failed.
func (s *OTelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}
