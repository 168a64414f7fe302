package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"imid/internal/config"
	"imid/pkg/contracts"
)

// InstrumentationName names the tracer and meter used across the pipeline
const InstrumentationName = "imid"

// Telemetry holds the tracer, meter and pipeline instruments for one process.
type Telemetry struct {
	Tracer  trace.Tracer
	Meter   metric.Meter
	Metrics *PipelineMetrics

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	registry       *promclient.Registry
	logger         *slog.Logger
}

// PipelineMetrics are the counters and histograms recorded by a pipeline run
type PipelineMetrics struct {
	RowsRead           metric.Int64Counter
	RowsDropped        metric.Int64Counter
	EngagementsCoerced metric.Int64Counter
	ChartsWritten      metric.Int64Counter
	Runs               metric.Int64Counter
	Duration           metric.Float64Histogram
}

// NewTelemetry initializes tracing and metrics according to cfg. Spans are written to
// spanWriter when the stdout exporter is selected.
func NewTelemetry(cfg config.TelemetryConfig, spanWriter io.Writer, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Telemetry{logger: logger}

	res := createResource(cfg)

	if err := t.initializeTracing(cfg, res, spanWriter); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := t.initializeMetrics(cfg, res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	metrics, err := CreatePipelineMetrics(t.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	t.Metrics = metrics

	logger.Debug("Telemetry initialized",
		slog.Bool("tracing_enabled", t.tracerProvider != nil),
		slog.Bool("metrics_enabled", t.meterProvider != nil))

	return t, nil
}

// createResource describes this process. Merging with resource.Default() fails whenever
// the SDK's schema differs from semconv.SchemaURL.
func createResource(cfg config.TelemetryConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(contracts.Version),
	)
}

// NoopTelemetry returns telemetry that records nothing.
func NoopTelemetry() *Telemetry {
	meter := metricnoop.NewMeterProvider().Meter(InstrumentationName)
	// noop instruments never fail
	metrics, _ := CreatePipelineMetrics(meter)
	return &Telemetry{
		Tracer:  tracenoop.NewTracerProvider().Tracer(InstrumentationName),
		Meter:   meter,
		Metrics: metrics,
		logger:  slog.Default(),
	}
}

func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource, w io.Writer) error {
	if !cfg.Tracing || cfg.TraceExporter == "none" {
		t.Tracer = tracenoop.NewTracerProvider().Tracer(InstrumentationName)
		return nil
	}

	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		if w == nil {
			w = io.Discard
		}
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(w),
			stdouttrace.WithPrettyPrint(),
		)
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	t.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	t.Tracer = t.tracerProvider.Tracer(InstrumentationName, trace.WithInstrumentationVersion(contracts.Version))
	return nil
}

func (t *Telemetry) initializeMetrics(cfg config.TelemetryConfig, res *resource.Resource) error {
	if !cfg.Metrics {
		t.Meter = metricnoop.NewMeterProvider().Meter(InstrumentationName)
		return nil
	}

	// A private registry keeps repeated initializations from colliding
	t.registry = promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(t.registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	t.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	t.Meter = t.meterProvider.Meter(InstrumentationName, metric.WithInstrumentationVersion(contracts.Version))
	return nil
}

// CreatePipelineMetrics creates the pipeline instruments on meter
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsRead, err := meter.Int64Counter("imid_rows_read",
		metric.WithDescription("Data rows read from input files"))
	if err != nil {
		return nil, err
	}

	rowsDropped, err := meter.Int64Counter("imid_rows_dropped",
		metric.WithDescription("Rows dropped because their date could not be parsed"))
	if err != nil {
		return nil, err
	}

	coerced, err := meter.Int64Counter("imid_engagements_coerced",
		metric.WithDescription("Engagement values coerced to zero"))
	if err != nil {
		return nil, err
	}

	charts, err := meter.Int64Counter("imid_charts_written",
		metric.WithDescription("Chart artifacts written"))
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter("imid_pipeline_runs",
		metric.WithDescription("Pipeline runs by outcome"))
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("imid_pipeline_duration",
		metric.WithDescription("Pipeline run duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RowsRead:           rowsRead,
		RowsDropped:        rowsDropped,
		EngagementsCoerced: coerced,
		ChartsWritten:      charts,
		Runs:               runs,
		Duration:           duration,
	}, nil
}

// RecordRun records the outcome and duration of one pipeline run
func (m *PipelineMetrics) RecordRun(ctx context.Context, outcome string, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.Runs.Add(ctx, 1, attrs)
	m.Duration.Record(ctx, seconds, attrs)
}

// MetricsHandler serves the Prometheus exposition for this telemetry instance.
func (t *Telemetry) MetricsHandler() http.Handler {
	if t.registry == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "metrics disabled", http.StatusNotFound)
		})
	}
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes pending spans and metrics.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
