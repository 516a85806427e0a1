package main

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/dropdown/internal/config"
)

// spanLogger writes every finished span to a logger at debug level.
type spanLogger struct {
	logger *slog.Logger
}

func (spanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p spanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	args := []any{
		"span", s.Name(),
		"trace_id", s.SpanContext().TraceID().String(),
		"status", s.Status().Code.String(),
		"duration", s.EndTime().Sub(s.StartTime()),
	}
	for _, kv := range s.Attributes() {
		args = append(args, string(kv.Key), kv.Value.Emit())
	}
	p.logger.Debug("span", args...)
}

func (spanLogger) Shutdown(context.Context) error   { return nil }
func (spanLogger) ForceFlush(context.Context) error { return nil }

// setupTracing installs a global TracerProvider that logs finished spans,
// and returns the tracer the host should use. With tracing disabled it
// returns a nil tracer, which the host replaces with a no-op one.
func setupTracing(cfg *config.Config, logger *slog.Logger) (trace.Tracer, func(context.Context) error) {
	if !cfg.Tracing.Enabled {
		return nil, func(context.Context) error { return nil }
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(spanLogger{logger: logger.With("component", "trace")}),
	)
	otel.SetTracerProvider(tp)
	return tp.Tracer(cfg.Tracing.Name), tp.Shutdown
}
