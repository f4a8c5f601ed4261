package operations

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/anaysharma/csv-xl-to-doc/internal/infrastructure"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// TracerName is the instrumentation name for run spans
const TracerName = "github.com/anaysharma/csv-xl-to-doc/operations"

// RunTracer wraps span creation and metric recording for runs
type RunTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.RunMetrics
}

// NewRunTracer creates a tracer backed by providers. Nil providers give a
// tracer that records nothing.
func NewRunTracer(providers *infrastructure.OTelProviders) (*RunTracer, error) {
	if providers == nil {
		return &RunTracer{tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	}

	metrics, err := infrastructure.NewRunMetrics(providers.Meter)
	if err != nil {
		return nil, err
	}

	return &RunTracer{
		tracer:  providers.Tracer,
		metrics: metrics,
	}, nil
}

// TraceRun creates a span covering a whole run
func (rt *RunTracer) TraceRun(ctx context.Context, runID, source string) (context.Context, trace.Span) {
	return rt.tracer.Start(ctx, "reportcard.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.source", source),
		),
	)
}

// RecordRunCompletion annotates the run span with the manifest totals
func (rt *RunTracer) RecordRunCompletion(span trace.Span, manifest *RunManifest) {
	span.SetAttributes(
		attribute.Int("run.completed", manifest.Completed),
		attribute.Int("run.skipped", manifest.Skipped),
		attribute.Int("run.failed", manifest.Failed),
		attribute.String("run.status", manifest.Status),
	)
	if manifest.Failed > 0 {
		span.SetStatus(codes.Error, "one or more inputs failed")
	} else {
		span.SetStatus(codes.Ok, "run completed")
	}
}

// TraceTable creates a span for one input table
func (rt *RunTracer) TraceTable(ctx context.Context, name string) (context.Context, trace.Span) {
	return rt.tracer.Start(ctx, "reportcard.table",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("table.name", name)),
	)
}

// RecordTableCompletion ends the table span and records metrics for report
func (rt *RunTracer) RecordTableCompletion(ctx context.Context, span trace.Span, report domain.Report, duration time.Duration) {
	span.SetAttributes(
		attribute.String("table.status", string(report.Status)),
		attribute.Int("table.students", report.StudentCount),
		attribute.Int("table.subjects", report.SubjectCount),
		attribute.Float64("table.duration_seconds", duration.Seconds()),
	)

	switch report.Status {
	case domain.ReportStatusFailed:
		span.SetStatus(codes.Error, report.Error)
	default:
		span.SetStatus(codes.Ok, string(report.Status))
	}
	span.End()

	students := 0
	if report.Status == domain.ReportStatusCompleted {
		students = report.StudentCount
	}
	rt.metrics.RecordInput(ctx, string(report.Status), students, duration.Seconds())
}
