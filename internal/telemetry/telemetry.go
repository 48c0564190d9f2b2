// Package telemetry installs the OpenTelemetry tracer and meter providers
// used by the pathfinder's spans and instruments.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/abenet15/maze/internal/config"
)

// ErrUnknownExporter is returned for an exporter name Init does not support.
var ErrUnknownExporter = errors.New("unknown exporter")

// Telemetry holds the installed providers.
type Telemetry struct {
	shutdownFuncs  []func(context.Context) error
	metricsHandler http.Handler
}

// Init sets the global tracer and meter providers according to cfg. Spans go
// to w when the stdout trace exporter is selected (stderr if w is nil).
// Callers must call Shutdown on exit.
func Init(ctx context.Context, cfg config.TelemetryConfig, w io.Writer) (*Telemetry, error) {
	if w == nil {
		w = os.Stderr
	}
	t := &Telemetry{}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
	)

	switch cfg.TraceExporter {
	case "", "none":
	case "stdout":
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("create stdout trace exporter: %w", err)
		}
		tp := trace.NewTracerProvider(
			trace.WithBatcher(exporter),
			trace.WithResource(res),
			trace.WithSampler(trace.AlwaysSample()),
		)
		otel.SetTracerProvider(tp)
		t.shutdownFuncs = append(t.shutdownFuncs, tp.Shutdown)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.TraceExporter)
	}

	switch cfg.MetricExporter {
	case "", "none":
	case "prometheus":
		registry := prometheus.NewRegistry()
		exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}
		mp := metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(exporter),
		)
		otel.SetMeterProvider(mp)
		t.shutdownFuncs = append(t.shutdownFuncs, mp.Shutdown)
		t.metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	default:
		_ = t.Shutdown(ctx)
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.MetricExporter)
	}

	return t, nil
}

// MetricsHandler returns the /metrics handler, or nil when the Prometheus
// exporter is not enabled.
func (t *Telemetry) MetricsHandler() http.Handler {
	return t.metricsHandler
}

// Shutdown flushes and stops every installed provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range t.shutdownFuncs {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	t.shutdownFuncs = nil
	return errors.Join(errs...)
}
