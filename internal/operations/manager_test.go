package operations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/internal/dataprocessing"
	"github.com/anaysharma/csv-xl-to-doc/internal/errors"
	"github.com/anaysharma/csv-xl-to-doc/internal/exporter"
	"github.com/anaysharma/csv-xl-to-doc/internal/infrastructure"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

const validCSV = `S. No.,Student Name,EXAM,Math,,Eng,
1,Asha Verma,PT I,40,50,72,80
,,TERM I,70,80,AB,80
,,PT II,20,40,60,0
2,Ravi Kumar,PT I,80,80,40,50
,,TERM I,10,20,,
,,PT II,,,,
`

// recordingRenderer writes a marker file per report and fails for the
// configured table names.
type recordingRenderer struct {
	failFor  map[string]bool
	rendered []string
}

func (r *recordingRenderer) Format() domain.ReportFormat { return domain.ReportFormatPDF }

func (r *recordingRenderer) Render(_ context.Context, in exporter.ReportInput, outPath string) error {
	if r.failFor[in.Gradebook.Source] {
		return fmt.Errorf("printer on fire")
	}
	r.rendered = append(r.rendered, in.Gradebook.Source)
	return os.WriteFile(outPath, []byte(in.Gradebook.ClassLabel), 0644)
}

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.HeaderImage = ""
	logger := infrastructure.NewLogger(cfg.Logging, &strings.Builder{})
	m, err := NewManager(cfg, logger, opts...)
	require.NoError(t, err)
	return m
}

func TestRun_OneDocumentPerInput(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "CSV")
	outputDir := filepath.Join(base, "output-docs")
	writeInput(t, inputDir, "Grade 5 - 5a.csv", validCSV)
	writeInput(t, inputDir, "Grade 5 - 5b.csv", validCSV)

	manifest, err := newTestManager(t).Run(context.Background(), inputDir, outputDir)
	require.NoError(t, err)

	assert.Equal(t, 2, manifest.Completed)
	assert.Equal(t, RunStatusCompleted, manifest.Status)
	assert.FileExists(t, filepath.Join(outputDir, "Grade 5 - 5a_Report.xlsx"))
	assert.FileExists(t, filepath.Join(outputDir, "Grade 5 - 5b_Report.xlsx"))
	assert.FileExists(t, ManifestPath(outputDir))

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "two reports and the manifest")

	first := manifest.Reports[0]
	assert.Equal(t, "Grade 5 - 5a", first.Source)
	assert.Equal(t, "CLASS 5A", first.ClassLabel)
	assert.Equal(t, 2, first.StudentCount)
	assert.Equal(t, 2, first.SubjectCount)
	assert.Positive(t, first.FileSize)
}

func TestRun_CollidingOutputNamesAreNumbered(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "CSV")
	outputDir := filepath.Join(base, "out")
	writeInput(t, inputDir, "X - A.csv", validCSV)

	wb := excelize.NewFile()
	wb.SetSheetName(wb.GetSheetName(0), "A")
	for i, line := range strings.Split(strings.TrimSpace(validCSV), "\n") {
		cells := make([]interface{}, 0)
		for _, field := range strings.Split(line, ",") {
			cells = append(cells, field)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow("A", cell, &cells))
	}
	require.NoError(t, wb.SaveAs(filepath.Join(inputDir, "X.xlsx")))
	require.NoError(t, wb.Close())

	renderer := &recordingRenderer{}
	manifest, err := newTestManager(t, WithRenderer(renderer)).Run(context.Background(), inputDir, outputDir)
	require.NoError(t, err)

	require.Equal(t, 2, manifest.Completed)
	assert.Equal(t, []string{"X - A", "X - A"}, renderer.rendered)
	assert.Equal(t, filepath.Join(outputDir, "X - A_Report.pdf"), manifest.Reports[0].FilePath)
	assert.Equal(t, filepath.Join(outputDir, "X - A_Report (2).pdf"), manifest.Reports[1].FilePath)
	assert.FileExists(t, manifest.Reports[0].FilePath)
	assert.FileExists(t, manifest.Reports[1].FilePath)
}

func TestRun_SkipsTablesWithoutStudents(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "CSV")
	outputDir := filepath.Join(base, "out")
	writeInput(t, inputDir, "a.csv", validCSV)
	writeInput(t, inputDir, "b.csv", "just,some,text\n")
	writeInput(t, inputDir, "c.csv", "S. No.,Student Name,EXAM,Math,\nTotal,,,\n")

	renderer := &recordingRenderer{}
	manifest, err := newTestManager(t, WithRenderer(renderer)).Run(context.Background(), inputDir, outputDir)
	require.NoError(t, err)

	assert.Equal(t, 1, manifest.Completed)
	assert.Equal(t, 2, manifest.Skipped)
	assert.Equal(t, []string{"a"}, renderer.rendered)

	assert.True(t, strings.Contains(manifest.Reports[1].Error, errors.ErrNoHeader.Error()))
	assert.True(t, strings.Contains(manifest.Reports[2].Error, errors.ErrNoStudents.Error()))
	assert.NoFileExists(t, filepath.Join(outputDir, "b_Report.pdf"))
	assert.NoFileExists(t, filepath.Join(outputDir, "c_Report.pdf"))
}

func TestRun_RenderFailureDoesNotStopRun(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "CSV")
	outputDir := filepath.Join(base, "out")
	writeInput(t, inputDir, "a.csv", validCSV)
	writeInput(t, inputDir, "b.csv", validCSV)
	writeInput(t, inputDir, "c.csv", validCSV)

	renderer := &recordingRenderer{failFor: map[string]bool{"b": true}}
	manifest, err := newTestManager(t, WithRenderer(renderer)).Run(context.Background(), inputDir, outputDir)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, renderer.rendered)
	assert.Equal(t, 2, manifest.Completed)
	assert.Equal(t, 1, manifest.Failed)
	assert.Equal(t, RunStatusPartial, manifest.Status)

	failed := manifest.Reports[1]
	assert.Equal(t, domain.ReportStatusFailed, failed.Status)
	assert.Contains(t, failed.Error, "printer on fire")
	assert.Contains(t, failed.Error, "[RENDER]")
}

func TestRun_MissingInputDir(t *testing.T) {
	base := t.TempDir()
	outputDir := filepath.Join(base, "out")

	manifest, err := newTestManager(t).Run(context.Background(), filepath.Join(base, "CSV"), outputDir)

	require.Error(t, err)
	assert.Nil(t, manifest)
	assert.True(t, errors.Is(err, errors.ErrInputDirMissing))
	assert.NoDirExists(t, outputDir)
}

func TestRun_UnreadableWorkbookRecordedAsFailed(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "CSV")
	writeInput(t, inputDir, "broken.xlsx", "not a zip archive")
	writeInput(t, inputDir, "ok.csv", validCSV)

	renderer := &recordingRenderer{}
	manifest, err := newTestManager(t, WithRenderer(renderer)).Run(context.Background(), inputDir, filepath.Join(base, "out"))
	require.NoError(t, err)

	require.Len(t, manifest.Reports, 2)
	assert.Equal(t, domain.ReportStatusFailed, manifest.Reports[0].Status)
	assert.Contains(t, manifest.Reports[0].Error, "[READ]")
	assert.Equal(t, domain.ReportStatusCompleted, manifest.Reports[1].Status)
}

func TestRun_OutputIndependentOfOtherInputs(t *testing.T) {
	base := t.TempDir()
	single := filepath.Join(base, "single")
	both := filepath.Join(base, "both")
	writeInput(t, single, "z.csv", validCSV)
	writeInput(t, both, "a.csv", "nothing here")
	writeInput(t, both, "z.csv", validCSV)

	_, err := newTestManager(t).Run(context.Background(), single, filepath.Join(base, "out1"))
	require.NoError(t, err)
	_, err = newTestManager(t).Run(context.Background(), both, filepath.Join(base, "out2"))
	require.NoError(t, err)

	m1, err := LoadRunManifest(ManifestPath(filepath.Join(base, "out1")))
	require.NoError(t, err)
	m2, err := LoadRunManifest(ManifestPath(filepath.Join(base, "out2")))
	require.NoError(t, err)

	r1 := m1.Reports[0]
	r2 := m2.Reports[1]
	assert.Equal(t, r1.Source, r2.Source)
	assert.Equal(t, r1.StudentCount, r2.StudentCount)
	assert.Equal(t, r1.SubjectCount, r2.SubjectCount)
}

func TestRun_CancelledBetweenInputs(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "CSV")
	outputDir := filepath.Join(base, "out")
	writeInput(t, inputDir, "a.csv", validCSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	manifest, err := newTestManager(t, WithRenderer(&recordingRenderer{})).Run(ctx, inputDir, outputDir)

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, manifest)
	assert.Equal(t, RunStatusCancelled, manifest.Status)
	assert.Empty(t, manifest.Reports)
	assert.FileExists(t, ManifestPath(outputDir))
}

func TestRun_TraceIDUsedAsRunID(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "CSV")
	writeInput(t, inputDir, "a.csv", validCSV)

	ctx := infrastructure.WithTraceID(context.Background(), "run-123")
	manifest, err := newTestManager(t, WithRenderer(&recordingRenderer{})).Run(ctx, inputDir, filepath.Join(base, "out"))
	require.NoError(t, err)

	assert.Equal(t, "run-123", manifest.RunID)
}

func TestRunTables(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "out")
	rows, err := dataprocessing.ReadLines(strings.NewReader(validCSV))
	require.NoError(t, err)

	renderer := &recordingRenderer{}
	manifest, err := newTestManager(t, WithRenderer(renderer)).RunTables(context.Background(),
		"https://docs.google.com/spreadsheets/d/abc/edit",
		[]dataprocessing.Table{{Name: "6B", Rows: rows}, {Name: "Notes", Rows: [][]string{{"hello"}}}},
		outputDir)
	require.NoError(t, err)

	assert.Equal(t, 1, manifest.Completed)
	assert.Equal(t, 1, manifest.Skipped)

	content, err := os.ReadFile(filepath.Join(outputDir, "6B_Report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "CLASS 6B", string(content))
}

func TestRun_WithTelemetry(t *testing.T) {
	base := t.TempDir()
	inputDir := filepath.Join(base, "CSV")
	writeInput(t, inputDir, "a.csv", validCSV)
	writeInput(t, inputDir, "b.csv", "no header")

	providers, err := infrastructure.InitializeOTel(config.TelemetryConfig{}, nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	tracer, err := NewRunTracer(providers)
	require.NoError(t, err)

	_, err = newTestManager(t, WithRenderer(&recordingRenderer{}), WithTracer(tracer)).
		Run(context.Background(), inputDir, filepath.Join(base, "out"))
	require.NoError(t, err)

	metricsFile := filepath.Join(base, "metrics.prom")
	require.NoError(t, providers.WriteMetrics(metricsFile))
	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `status="skipped"`)
	assert.Contains(t, string(content), `status="completed"`)
}

func TestNewManager_UnsupportedFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Report.Format = "docx"

	_, err := NewManager(cfg, nil)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
}
