// Package telemetry records tool invocations as OpenTelemetry metrics and
// spans. Export is off unless an OTLP/HTTP endpoint is configured; without
// one the global no-op providers absorb everything.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ServiceName identifies this process in exported telemetry.
const ServiceName = "slides-mcp"

// MetricInterval is how often metrics are pushed to the collector.
const MetricInterval = 30 * time.Second

// Shutdown flushes and stops exporters installed by Setup.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Setup installs global tracer and meter providers exporting to endpoint
// over OTLP/HTTP. An endpoint with a scheme ("http://localhost:4318") is the
// collector's base URL and signals go to /v1/traces and /v1/metrics under
// it; a bare "host:port" uses TLS. Empty endpoint leaves the no-op
// providers in place.
func Setup(ctx context.Context, endpoint, serviceVersion string) (Shutdown, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return noopShutdown, nil
	}
	host, base, insecure, err := parseEndpoint(endpoint)
	if err != nil {
		return noopShutdown, err
	}

	traceOpts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(host),
		otlptracehttp.WithURLPath(base + "/v1/traces"),
	}
	metricOpts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(host),
		otlpmetrichttp.WithURLPath(base + "/v1/metrics"),
	}
	if insecure {
		traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
		metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
	}

	traceExp, err := otlptracehttp.New(ctx, traceOpts...)
	if err != nil {
		return noopShutdown, fmt.Errorf("otlp trace exporter: %w", err)
	}
	metricExp, err := otlpmetrichttp.New(ctx, metricOpts...)
	if err != nil {
		_ = traceExp.Shutdown(ctx)
		return noopShutdown, fmt.Errorf("otlp metric exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", serviceVersion),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp,
			sdkmetric.WithInterval(MetricInterval))),
		sdkmetric.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

// parseEndpoint splits a collector endpoint into host, base path and
// whether plain HTTP is used.
func parseEndpoint(endpoint string) (host, base string, insecure bool, err error) {
	if !strings.Contains(endpoint, "://") {
		return endpoint, "", false, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "", "", false, fmt.Errorf("telemetry endpoint %q: not a valid URL", endpoint)
	}
	switch u.Scheme {
	case "http":
		insecure = true
	case "https":
	default:
		return "", "", false, fmt.Errorf("telemetry endpoint %q: scheme must be http or https", endpoint)
	}
	return u.Host, strings.TrimRight(u.Path, "/"), insecure, nil
}
