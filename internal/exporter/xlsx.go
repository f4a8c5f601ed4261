package exporter

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/anaysharma/csv-xl-to-doc/internal/chart"
	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

const (
	// SummarySheet is the name of the class summary worksheet
	SummarySheet = "Summary"

	maxSheetName = 31
	// pageSizeA4 is the OOXML paper size code for A4
	pageSizeA4 = 9
	pageMargin = 0.4 // inches

	// headerImageWidthPx is the width a header image is scaled to
	headerImageWidthPx = 620
	// defaultRowHeightPx is the height of an unstyled worksheet row
	defaultRowHeightPx = 20
	// minTableCols keeps the merged headings readable for few subjects
	minTableCols = 6

	chartWidthPx  = 900
	chartHeightPx = 450
)

// XLSXRenderer writes one worksheet per student with a native column chart
type XLSXRenderer struct {
	chart  config.ChartConfig
	logger *slog.Logger
}

// NewXLSXRenderer creates a new xlsx renderer
func NewXLSXRenderer(chartCfg config.ChartConfig, logger *slog.Logger) *XLSXRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	if len(chartCfg.Palette) == 0 {
		chartCfg.Palette = config.DefaultPalette
	}
	if chartCfg.YMax <= 0 {
		chartCfg.YMax = config.DefaultChartYMax
	}
	return &XLSXRenderer{chart: chartCfg, logger: logger}
}

// Format implements Renderer
func (r *XLSXRenderer) Format() domain.ReportFormat {
	return domain.ReportFormatXLSX
}

// xlsxStyles holds the style IDs registered on one workbook
type xlsxStyles struct {
	school, title, class int
	banner                int
	tableHeader, examName int
	score                 int
	summaryHeader         int
}

// Render implements Renderer
func (r *XLSXRenderer) Render(ctx context.Context, in ReportInput, outPath string) error {
	gb := in.Gradebook
	if gb.Empty() {
		return fmt.Errorf("nothing to render for %q", gb.Source)
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := r.registerStyles(f, in.Report)
	if err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	image, hasImage := headerImage(in.HeaderImage)
	if in.HeaderImage != "" && !hasImage {
		r.logger.DebugContext(ctx, "Header image not found, omitting",
			slog.String("path", in.HeaderImage))
	}

	names := newSheetNamer()
	defaultSheet := f.GetSheetName(0)

	for i, student := range gb.Students {
		if err := ctx.Err(); err != nil {
			return err
		}

		sheet := names.next(student)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", sheet, err)
		}

		if err := r.writeStudentSheet(f, sheet, gb, student, in.Report, styles, image, hasImage); err != nil {
			return fmt.Errorf("student %s: %w", student.SerialNo, err)
		}
	}

	if in.Summary != nil && in.Report.IncludeSummary {
		if err := r.writeSummarySheet(f, gb, *in.Summary, styles); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	f.SetActiveSheet(0)

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	r.logger.DebugContext(ctx, "Workbook written",
		slog.String("path", outPath),
		slog.Int("sheets", len(f.GetSheetList())))
	return nil
}

func (r *XLSXRenderer) writeStudentSheet(f *excelize.File, sheet string, gb *domain.Gradebook, student domain.StudentRecord,
	report config.ReportConfig, styles xlsxStyles, image string, hasImage bool) error {

	if err := setupPage(f, sheet); err != nil {
		return err
	}

	lastCol := len(gb.Subjects) + 1
	if lastCol < minTableCols {
		lastCol = minTableCols
	}
	lastColName, _ := excelize.ColumnNumberToName(lastCol)

	if err := f.SetColWidth(sheet, "A", "A", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", lastColName, 12); err != nil {
		return err
	}

	row := 1
	if hasImage {
		scale, rows := fitImage(image, headerImageWidthPx)
		if err := f.AddPicture(sheet, "A1", image, &excelize.GraphicOptions{
			ScaleX:          scale,
			ScaleY:          scale,
			LockAspectRatio: true,
			Positioning:     "oneCell",
		}); err != nil {
			r.logger.Warn("Failed to place header image", slog.String("path", image), slog.String("error", err.Error()))
		} else {
			row = rows + 1
		}
	}

	headings := []struct {
		text  string
		style int
	}{
		{report.SchoolName, styles.school},
		{report.ReportTitle, styles.title},
		{gb.ClassLabel, styles.class},
	}
	for _, h := range headings {
		if h.text == "" {
			continue
		}
		if err := mergedText(f, sheet, row, lastColName, h.text, h.style); err != nil {
			return err
		}
		row++
	}
	row++

	// Banner: serial on the left, name across the rest.
	serial, name := studentHeading(student)
	if err := f.SetCellValue(sheet, cell(1, row), serial); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell(2, row), name); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, cell(2, row), lastColName+fmt.Sprint(row)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell(1, row), lastColName+fmt.Sprint(row), styles.banner); err != nil {
		return err
	}
	row += 2

	// Marks table
	headerRow := row
	header := make([]interface{}, 0, len(gb.Subjects)+1)
	header = append(header, "EXAM")
	for _, s := range gb.Subjects {
		header = append(header, s)
	}
	if err := f.SetSheetRow(sheet, cell(1, headerRow), &header); err != nil {
		return err
	}
	tableEndCol := len(gb.Subjects) + 1
	if err := f.SetCellStyle(sheet, cell(1, headerRow), cell(tableEndCol, headerRow), styles.tableHeader); err != nil {
		return err
	}

	for i, exam := range student.Exams {
		examRow := headerRow + 1 + i
		values := make([]interface{}, 0, len(gb.Subjects)+1)
		values = append(values, exam.ExamName)
		for _, s := range gb.Subjects {
			values = append(values, exam.Score(s))
		}
		if err := f.SetSheetRow(sheet, cell(1, examRow), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell(1, examRow), cell(1, examRow), styles.examName); err != nil {
			return err
		}
		if len(gb.Subjects) > 0 {
			if err := f.SetCellStyle(sheet, cell(2, examRow), cell(tableEndCol, examRow), styles.score); err != nil {
				return err
			}
		}
	}

	if len(gb.Subjects) == 0 {
		return nil
	}

	chartRow := headerRow + len(student.Exams) + 2
	return f.AddChart(sheet, cell(1, chartRow), r.columnChart(sheet, headerRow, student, gb.Subjects))
}

// columnChart builds a clustered column chart over the marks table: one
// series per exam row, categories from the subject header cells.
func (r *XLSXRenderer) columnChart(sheet string, headerRow int, student domain.StudentRecord, subjects []string) *excelize.Chart {
	ref := quoteSheet(sheet)
	lastCol := len(subjects) + 1
	categories := fmt.Sprintf("%s!%s:%s", ref, absCell(2, headerRow), absCell(lastCol, headerRow))

	built := chart.BuildSeries(student, subjects, r.chart.Palette)
	series := make([]excelize.ChartSeries, len(built))
	for i, s := range built {
		row := headerRow + 1 + i
		series[i] = excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!%s", ref, absCell(1, row)),
			Categories: categories,
			Values:     fmt.Sprintf("%s!%s:%s", ref, absCell(2, row), absCell(lastCol, row)),
			Fill: excelize.Fill{
				Type:    "pattern",
				Pattern: 1,
				Color:   []string{strings.TrimPrefix(s.Color, "#")},
			},
		}
	}

	minVal := 0.0
	maxVal := r.chart.YMax

	return &excelize.Chart{
		Type:   excelize.Col,
		Series: series,
		Format: excelize.GraphicOptions{
			OffsetX: 5,
			OffsetY: 5,
		},
		Dimension: excelize.ChartDimension{
			Width:  chartWidthPx,
			Height: chartHeightPx,
		},
		Legend: excelize.ChartLegend{
			Position: "top",
		},
		XAxis: excelize.ChartAxis{
			Font: excelize.Font{Bold: true, Size: 11},
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Minimum:        &minVal,
			Maximum:        &maxVal,
			Title:          []excelize.RichTextRun{{Text: r.chart.YLabel}},
		},
	}
}

func (r *XLSXRenderer) writeSummarySheet(f *excelize.File, gb *domain.Gradebook, summary domain.ClassSummary, styles xlsxStyles) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	if err := setupPage(f, SummarySheet); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "B", "F", 12); err != nil {
		return err
	}

	row := 1
	if err := mergedText(f, SummarySheet, row, "F", gb.ClassLabel, styles.class); err != nil {
		return err
	}
	row++
	if err := f.SetSheetRow(SummarySheet, cell(1, row), &[]interface{}{"Students", summary.StudentCount}); err != nil {
		return err
	}
	row += 2

	for _, exam := range summary.Exams {
		if err := mergedText(f, SummarySheet, row, "F", exam.ExamName, styles.title); err != nil {
			return err
		}
		row++

		if err := f.SetSheetRow(SummarySheet, cell(1, row), &[]interface{}{"Subject", "Count", "Mean", "Median", "Min", "Max"}); err != nil {
			return err
		}
		if err := f.SetCellStyle(SummarySheet, cell(1, row), cell(6, row), styles.summaryHeader); err != nil {
			return err
		}
		row++

		for _, s := range exam.Subjects {
			if err := f.SetSheetRow(SummarySheet, cell(1, row), &[]interface{}{s.Subject, s.Count, s.Mean, s.Median, s.Min, s.Max}); err != nil {
				return err
			}
			if err := f.SetCellStyle(SummarySheet, cell(3, row), cell(6, row), styles.score); err != nil {
				return err
			}
			row++
		}
		row++
	}
	return nil
}

func (r *XLSXRenderer) registerStyles(f *excelize.File, report config.ReportConfig) (xlsxStyles, error) {
	var s xlsxStyles
	font := report.FontName
	if font == "" {
		font = "Arial"
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	numFmt := scoreNumFmt

	definitions := []struct {
		target *int
		style  *excelize.Style
	}{
		{&s.school, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16, Family: font}, Alignment: center}},
		{&s.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14, Family: font}, Alignment: center}},
		{&s.class, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12, Family: font}, Alignment: center}},
		{&s.banner, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 12, Family: font},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{report.HighlightColor}},
		}},
		{&s.tableHeader, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Family: font},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{report.HeaderColor}},
			Alignment: center,
			Border:    border,
		}},
		{&s.examName, &excelize.Style{Font: &excelize.Font{Bold: true, Family: font}, Border: border}},
		{&s.score, &excelize.Style{Font: &excelize.Font{Family: font}, Alignment: center, Border: border, CustomNumFmt: &numFmt}},
		{&s.summaryHeader, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Family: font},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{report.HeaderColor}},
			Alignment: center,
			Border:    border,
		}},
	}

	for _, d := range definitions {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, err
		}
		*d.target = id
	}
	return s, nil
}

// setupPage sets A4 portrait with narrow margins, one student per page
func setupPage(f *excelize.File, sheet string) error {
	size := pageSizeA4
	orientation := "portrait"
	fitWidth := 1
	if err := f.SetPageLayout(sheet, &excelize.PageLayoutOptions{
		Size:        &size,
		Orientation: &orientation,
		FitToWidth:  &fitWidth,
	}); err != nil {
		return fmt.Errorf("failed to set page layout: %w", err)
	}

	margin := pageMargin
	if err := f.SetPageMargins(sheet, &excelize.PageLayoutMarginsOptions{
		Top:    &margin,
		Bottom: &margin,
		Left:   &margin,
		Right:  &margin,
	}); err != nil {
		return fmt.Errorf("failed to set page margins: %w", err)
	}
	return nil
}

// fitImage returns the scale that brings the image at path to width pixels
// and the number of rows the scaled image covers. Unknown images keep their
// size and reserve a fixed block of rows.
func fitImage(path string, width int) (float64, int) {
	f, err := os.Open(path)
	if err != nil {
		return 1, 6
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil || cfg.Width == 0 {
		return 1, 6
	}

	scale := float64(width) / float64(cfg.Width)
	height := int(math.Ceil(float64(cfg.Height) * scale))
	return scale, height/defaultRowHeightPx + 1
}

func mergedText(f *excelize.File, sheet string, row int, lastCol string, text string, style int) error {
	first := cell(1, row)
	last := lastCol + fmt.Sprint(row)
	if err := f.SetCellValue(sheet, first, text); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, first, last); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func absCell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row, true)
	return name
}

func quoteSheet(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

// sheetNamer produces unique, valid worksheet names for students
type sheetNamer struct {
	used map[string]bool
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: map[string]bool{strings.ToLower(SummarySheet): true}}
}

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")", "'", "",
)

func (n *sheetNamer) next(student domain.StudentRecord) string {
	base := strings.TrimSpace(sheetNameReplacer.Replace(strings.TrimSpace(student.SerialNo + " " + student.Name)))
	if base == "" {
		base = "Student"
	}
	base = truncateRunes(base, maxSheetName)

	name := base
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = true
	return name
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max]))
}
