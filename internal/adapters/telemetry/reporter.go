package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/condalock/internal/core/ports"
)

// StepReporter implements sdktrace.SpanProcessor and logs every finished span
// with its duration at debug level.
type StepReporter struct {
	logger ports.Logger
}

// NewStepReporter returns a new StepReporter.
func NewStepReporter(logger ports.Logger) *StepReporter {
	return &StepReporter{logger: logger}
}

// OnStart does nothing.
func (r *StepReporter) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (r *StepReporter) OnEnd(s sdktrace.ReadOnlySpan) {
	if r.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	if s.Status().Code == codes.Error {
		r.logger.Debug(fmt.Sprintf("step %s failed after %s", s.Name(), elapsed))
		return
	}
	r.logger.Debug(fmt.Sprintf("step %s done in %s", s.Name(), elapsed))
}

// ForceFlush does nothing.
func (r *StepReporter) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (r *StepReporter) Shutdown(_ context.Context) error {
	return nil
}
