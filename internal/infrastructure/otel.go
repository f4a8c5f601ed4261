package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
)

const (
	ServiceName = "reportcard"
	MeterName   = "github.com/anaysharma/csv-xl-to-doc"
)

// OTelProviders holds the OpenTelemetry providers for one process.
// Providers are kept local instead of being installed globally so tests
// can build as many as they need.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Logger         *slog.Logger

	traceFile *os.File
}

// InitializeOTel sets up tracing (optional, exported as JSON to a file) and
// metrics (always on, gathered into a private Prometheus registry).
func InitializeOTel(cfg config.TelemetryConfig, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = GetLogger()
	}

	res, err := createResource()
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{Logger: logger}

	if cfg.TracingEnabled {
		if err := providers.initializeTracing(cfg.TraceFile, res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	} else {
		providers.Tracer = noop.NewTracerProvider().Tracer(MeterName)
	}

	if err := providers.initializeMetrics(res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Debug("OpenTelemetry initialization complete",
		slog.Bool("tracing_enabled", cfg.TracingEnabled),
		slog.String("trace_file", cfg.TraceFile))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource() (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
	), nil
}

func (p *OTelProviders) initializeTracing(traceFile string, res *resource.Resource) error {
	if err := os.MkdirAll(filepath.Dir(traceFile), 0755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}

	f, err := os.OpenFile(traceFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	// The run is short and sequential; a syncer keeps spans ordered in the file.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)

	p.traceFile = f
	p.TracerProvider = tp
	p.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

func (p *OTelProviders) initializeMetrics(res *resource.Resource) error {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	p.Registry = registry
	p.MeterProvider = mp
	p.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// WriteMetrics writes the gathered metrics in the Prometheus text format to
// path, suitable for the node exporter textfile collector.
func (p *OTelProviders) WriteMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, p.Registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// Shutdown flushes and releases the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var firstErr error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("tracer provider shutdown: %w", err)
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("meter provider shutdown: %w", err)
		}
	}
	if p.traceFile != nil {
		if err := p.traceFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.traceFile = nil
	}

	return firstErr
}

// RunMetrics contains the instruments recorded by a batch run
type RunMetrics struct {
	InputsTotal      metric.Int64Counter
	StudentsRendered metric.Int64Counter
	InputDuration    metric.Float64Histogram
}

// NewRunMetrics creates the batch run instruments on meter
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	inputsTotal, err := meter.Int64Counter(
		"reportcard_inputs",
		metric.WithDescription("Number of input tables processed, by status"),
	)
	if err != nil {
		return nil, err
	}

	studentsRendered, err := meter.Int64Counter(
		"reportcard_students_rendered",
		metric.WithDescription("Number of student pages rendered"),
	)
	if err != nil {
		return nil, err
	}

	inputDuration, err := meter.Float64Histogram(
		"reportcard_input_duration_seconds",
		metric.WithDescription("Time spent parsing and rendering one input table"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		InputsTotal:      inputsTotal,
		StudentsRendered: studentsRendered,
		InputDuration:    inputDuration,
	}, nil
}

// RecordInput records the outcome of one processed input
func (m *RunMetrics) RecordInput(ctx context.Context, status string, students int, seconds float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.InputsTotal.Add(ctx, 1, attrs)
	m.InputDuration.Record(ctx, seconds, attrs)
	if students > 0 {
		m.StudentsRendered.Add(ctx, int64(students))
	}
}
