package operations

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/internal/dataprocessing"
	"github.com/anaysharma/csv-xl-to-doc/internal/errors"
	"github.com/anaysharma/csv-xl-to-doc/internal/exporter"
	"github.com/anaysharma/csv-xl-to-doc/internal/files"
	"github.com/anaysharma/csv-xl-to-doc/internal/infrastructure"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// Manager runs the report pipeline over a set of input tables, one at a
// time. A failure in one input never stops the others.
type Manager struct {
	cfg         *config.Config
	headerImage string
	processor   *dataprocessing.Processor
	renderer    exporter.Renderer
	discovery   *files.Discovery
	files       *files.Manager
	tracer      *RunTracer
	logger      *slog.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithRenderer overrides the renderer chosen from the configured format
func WithRenderer(r exporter.Renderer) Option {
	return func(m *Manager) {
		m.renderer = r
	}
}

// WithTracer sets the tracer used for run and table spans
func WithTracer(t *RunTracer) Option {
	return func(m *Manager) {
		m.tracer = t
	}
}

// WithHeaderImage sets the resolved header image path
func WithHeaderImage(path string) Option {
	return func(m *Manager) {
		m.headerImage = path
	}
}

// NewManager creates a new run manager
func NewManager(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Manager, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	m := &Manager{
		cfg:         cfg,
		headerImage: cfg.Paths.HeaderImage,
		processor:   dataprocessing.NewProcessor(cfg.Parser, logger),
		discovery:   files.NewDiscovery(""),
		files:       files.NewManager(""),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.renderer == nil {
		renderer, err := exporter.NewRenderer(domain.ReportFormat(cfg.Report.Format), cfg.Chart, logger)
		if err != nil {
			return nil, err
		}
		m.renderer = renderer
	}
	if m.tracer == nil {
		m.tracer, _ = NewRunTracer(nil)
	}

	return m, nil
}

// Run renders a report for every table found in inputDir into outputDir and
// writes the run manifest there. A missing input directory aborts the run
// before anything is written.
func (m *Manager) Run(ctx context.Context, inputDir, outputDir string) (*RunManifest, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)

	inputs, err := m.discovery.FindInputs(inputDir)
	if err != nil {
		m.logger.ErrorContext(ctx, "Input discovery failed",
			slog.String("input_dir", inputDir),
			slog.String("error", err.Error()))
		return nil, errors.NewFileError(inputDir, errors.StageDiscover, err)
	}

	if err := m.files.EnsureDirectory(outputDir); err != nil {
		return nil, err
	}

	ctx, span := m.tracer.TraceRun(ctx, runID, inputDir)
	defer span.End()

	manifest := NewRunManifest(runID, inputDir, outputDir, m.renderer.Format())
	m.logRunStart(ctx, inputDir, outputDir, len(inputs))

	var runErr error
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		tables, err := m.processor.LoadTables(input)
		if err != nil {
			report := m.newReport(input.BaseName())
			report.Status = domain.ReportStatusFailed
			report.Error = err.Error()
			report.GeneratedAt = time.Now()
			m.logTableFailed(ctx, report, err)
			manifest.Add(report)
			continue
		}

		if err := m.processTables(ctx, manifest, tables, outputDir); err != nil {
			runErr = err
			break
		}
	}

	return manifest, m.finish(ctx, span, manifest, runErr)
}

// RunTables renders reports for tables that did not come from the input
// directory, such as the tabs of a Google Sheet.
func (m *Manager) RunTables(ctx context.Context, source string, tables []dataprocessing.Table, outputDir string) (*RunManifest, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)

	if err := m.files.EnsureDirectory(outputDir); err != nil {
		return nil, err
	}

	ctx, span := m.tracer.TraceRun(ctx, runID, source)
	defer span.End()

	manifest := NewRunManifest(runID, source, outputDir, m.renderer.Format())
	m.logRunStart(ctx, source, outputDir, len(tables))

	runErr := m.processTables(ctx, manifest, tables, outputDir)
	return manifest, m.finish(ctx, span, manifest, runErr)
}

func (m *Manager) processTables(ctx context.Context, manifest *RunManifest, tables []dataprocessing.Table, outputDir string) error {
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		manifest.Add(m.processTable(ctx, manifest, table.Name, table.Rows, outputDir))
	}
	return nil
}

// finish closes the manifest, writes it next to the reports and returns the
// error that ended the run early, if any.
func (m *Manager) finish(ctx context.Context, span trace.Span, manifest *RunManifest, runErr error) error {
	manifest.Finish(runErr != nil)
	m.tracer.RecordRunCompletion(span, manifest)

	if err := m.saveManifest(manifest); err != nil {
		m.logger.ErrorContext(ctx, "Failed to save run manifest", slog.String("error", err.Error()))
		if runErr == nil {
			runErr = err
		}
	}

	m.logRunComplete(ctx, manifest)
	return runErr
}

// ProcessTable parses rows as one gradebook and renders its report into
// outputDir. The returned report describes the outcome; it is never an
// error because every failure is isolated to its own input.
func (m *Manager) ProcessTable(ctx context.Context, name string, rows [][]string, outputDir string) domain.Report {
	return m.processTable(ctx, nil, name, rows, outputDir)
}

// processTable is ProcessTable within a run: the output name is claimed in
// manifest so two tables of one run never write the same file.
func (m *Manager) processTable(ctx context.Context, manifest *RunManifest, name string, rows [][]string, outputDir string) domain.Report {
	start := time.Now()
	ctx, span := m.tracer.TraceTable(ctx, name)

	report := m.newReport(name)
	defer func() {
		report.Duration = time.Since(start)
		report.GeneratedAt = time.Now()
		m.tracer.RecordTableCompletion(ctx, span, report, report.Duration)
	}()

	gb, err := m.processor.Process(dataprocessing.Table{Name: name, Rows: rows})
	if gb != nil {
		report.SubjectCount = len(gb.Subjects)
	}
	if err != nil {
		report.Error = err.Error()
		if errors.IsSkippable(err) {
			report.Status = domain.ReportStatusSkipped
			m.logTableSkipped(ctx, report, err)
		} else {
			report.Status = domain.ReportStatusFailed
			m.logTableFailed(ctx, report, err)
		}
		return report
	}

	gb.ClassLabel = report.ClassLabel
	report.StudentCount = len(gb.Students)
	summary := m.processor.Summarize(gb)

	outPath := filepath.Join(outputDir, files.OutputName(name, m.cfg.Report.OutputSuffix, m.renderer.Format()))
	if manifest != nil {
		if claimed := manifest.ClaimOutput(outPath); claimed != outPath {
			m.logOutputRenamed(ctx, name, outPath, claimed)
			outPath = claimed
		}
	}
	in := exporter.ReportInput{
		Gradebook:   gb,
		Summary:     &summary,
		Report:      m.cfg.Report,
		HeaderImage: m.headerImage,
	}

	if err := m.renderer.Render(ctx, in, outPath); err != nil {
		renderErr := errors.NewRenderError(name, err)
		report.Status = domain.ReportStatusFailed
		report.Error = renderErr.Error()
		m.logTableFailed(ctx, report, renderErr)
		return report
	}

	report.Status = domain.ReportStatusCompleted
	report.FilePath = outPath
	if size, err := m.files.GetFileSize(outPath); err == nil {
		report.FileSize = size
	}
	m.logTableCompleted(ctx, report, time.Since(start))
	return report
}

func (m *Manager) newReport(name string) domain.Report {
	return domain.Report{
		Source:     name,
		ClassLabel: files.ClassLabel(name, m.cfg.Report.ClassPrefix),
		Format:     m.renderer.Format(),
	}
}

// ManifestPath returns where the manifest of a run into outputDir is written
func ManifestPath(outputDir string) string {
	return filepath.Join(outputDir, config.ManifestFileName)
}

func (m *Manager) saveManifest(manifest *RunManifest) error {
	data, err := manifest.Marshal()
	if err != nil {
		return err
	}
	if err := m.files.WriteFile(ManifestPath(manifest.OutputDir), data); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
