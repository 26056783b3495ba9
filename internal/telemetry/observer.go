package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Metric names.
const (
	MetricInvocations = "slides_mcp.tool.invocations"
	MetricLatency     = "slides_mcp.tool.latency"
	SpanInvoke        = "tool.invoke"
)

// Observer records one counter increment, one latency sample and one span
// per tool invocation. A nil *Observer is valid and records nothing.
type Observer struct {
	tracer trace.Tracer

	invocations metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewObserver creates an observer bound to the provided meter/tracer.
func NewObserver(meter metric.Meter, tracer trace.Tracer) (*Observer, error) {
	invocations, err := meter.Int64Counter(
		MetricInvocations,
		metric.WithDescription("Number of MCP tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		MetricLatency,
		metric.WithDescription("Tool latency in seconds, including the remote API call"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return &Observer{
		tracer:      tracer,
		invocations: invocations,
		latency:     latency,
	}, nil
}

// NewGlobalObserver builds an observer on the global otel providers.
func NewGlobalObserver() (*Observer, error) {
	return NewObserver(otel.Meter(ServiceName), otel.Tracer(ServiceName))
}

// Invocation is an in-flight tool call started by [Observer.Start].
type Invocation struct {
	o     *Observer
	ctx   context.Context
	span  trace.Span
	tool  string
	start time.Time
}

// Start opens a span for tool and returns a context carrying it.
func (o *Observer) Start(ctx context.Context, tool, requestID string) (context.Context, *Invocation) {
	inv := &Invocation{o: o, ctx: ctx, tool: tool, start: time.Now()}
	if o == nil || o.tracer == nil {
		return ctx, inv
	}
	ctx, span := o.tracer.Start(ctx, SpanInvoke, trace.WithAttributes(
		attribute.String("tool_name", tool),
		attribute.String("request_id", requestID),
	))
	inv.ctx = ctx
	inv.span = span
	return ctx, inv
}

// End records the outcome. isError is the result's isError flag; err is a
// failure returned to the runtime instead of a result.
func (i *Invocation) End(isError bool, err error) {
	if i == nil || i.o == nil {
		return
	}
	success := err == nil && !isError
	attrs := []attribute.KeyValue{
		attribute.String("tool_name", i.tool),
		attribute.Bool("success", success),
		attribute.Bool("is_error", isError),
	}

	options := metric.WithAttributes(attrs...)
	i.o.invocations.Add(i.ctx, 1, options)
	i.o.latency.Record(i.ctx, time.Since(i.start).Seconds(), options)

	if i.span == nil {
		return
	}
	switch {
	case err != nil:
		i.span.RecordError(err)
		i.span.SetStatus(codes.Error, err.Error())
	case isError:
		i.span.SetStatus(codes.Error, "remote error")
	default:
		i.span.SetStatus(codes.Ok, "")
	}
	i.span.End()
}
