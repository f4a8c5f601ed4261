package operations

import (
	"context"
	"log/slog"
	"time"

	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// logRunStart logs the start of a run
func (m *Manager) logRunStart(ctx context.Context, source, outputDir string, inputs int) {
	m.logger.InfoContext(ctx, "run_start",
		slog.String("source", source),
		slog.String("output_dir", outputDir),
		slog.String("format", string(m.renderer.Format())),
		slog.Int("inputs", inputs))
}

// logRunComplete logs the totals of a finished run
func (m *Manager) logRunComplete(ctx context.Context, manifest *RunManifest) {
	m.logger.InfoContext(ctx, "run_complete",
		slog.String("status", manifest.Status),
		slog.Int("completed", manifest.Completed),
		slog.Int("skipped", manifest.Skipped),
		slog.Int("failed", manifest.Failed),
		slog.String("duration", manifest.Duration))
}

// logTableSkipped logs an input without student data
func (m *Manager) logTableSkipped(ctx context.Context, report domain.Report, err error) {
	m.logger.WarnContext(ctx, "table_skipped",
		slog.String("table", report.Source),
		slog.String("reason", err.Error()))
}

// logTableFailed logs an input that could not be read or rendered
func (m *Manager) logTableFailed(ctx context.Context, report domain.Report, err error) {
	errorMsg := "unknown error"
	if err != nil {
		errorMsg = err.Error()
	}
	m.logger.ErrorContext(ctx, "table_failed",
		slog.String("table", report.Source),
		slog.String("error", errorMsg))
}

// logTableCompleted logs a written report
func (m *Manager) logTableCompleted(ctx context.Context, report domain.Report, duration time.Duration) {
	m.logger.InfoContext(ctx, "table_complete",
		slog.String("table", report.Source),
		slog.String("class", report.ClassLabel),
		slog.String("output", report.FilePath),
		slog.Int("students", report.StudentCount),
		slog.Duration("duration", duration))
}

// logOutputRenamed logs a report moved to a numbered name because another
// table of the run already produced the same file name
func (m *Manager) logOutputRenamed(ctx context.Context, table, wanted, used string) {
	m.logger.WarnContext(ctx, "output_renamed",
		slog.String("table", table),
		slog.String("wanted", wanted),
		slog.String("output", used))
}
