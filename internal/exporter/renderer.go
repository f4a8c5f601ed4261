package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/internal/errors"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// ReportInput is everything needed to render one report document
type ReportInput struct {
	Gradebook *domain.Gradebook
	// Summary is optional; when nil no class summary is rendered
	Summary *domain.ClassSummary
	Report  config.ReportConfig
	// HeaderImage is a path to an image placed above each student page.
	// A missing file is skipped silently.
	HeaderImage string
}

// Renderer writes a report document for one gradebook to outPath
type Renderer interface {
	Render(ctx context.Context, in ReportInput, outPath string) error
	Format() domain.ReportFormat
}

// NewRenderer returns the renderer for format
func NewRenderer(format domain.ReportFormat, chartCfg config.ChartConfig, logger *slog.Logger) (Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", errors.ErrUnsupportedFormat, format)
	}

	if format == domain.ReportFormatPDF {
		return NewPDFRenderer(chartCfg, logger), nil
	}
	return NewXLSXRenderer(chartCfg, logger), nil
}

// headerImage returns the header image path when the file exists
func headerImage(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// studentHeading returns the two banner labels shown above a marks table
func studentHeading(s domain.StudentRecord) (serial, name string) {
	return "S. No.: " + s.SerialNo, "Student Name: " + s.Name
}
