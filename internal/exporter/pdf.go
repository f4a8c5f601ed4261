package exporter

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/anaysharma/csv-xl-to-doc/internal/chart"
	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

const (
	// A4 in inches
	a4Width  = 8.27
	a4Height = 11.69

	defaultPrintTimeout = 2 * time.Minute
)

// PDFRenderer lays the report out as HTML and prints it with headless Chrome
type PDFRenderer struct {
	charts    *chart.Renderer
	logger    *slog.Logger
	timeout   time.Duration
	allocOpts []chromedp.ExecAllocatorOption
}

// NewPDFRenderer creates a new PDF renderer
func NewPDFRenderer(chartCfg config.ChartConfig, logger *slog.Logger) *PDFRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.DisableGPU,
	)
	return &PDFRenderer{
		charts:    chart.NewRenderer(chartCfg),
		logger:    logger,
		timeout:   defaultPrintTimeout,
		allocOpts: opts,
	}
}

// Format implements Renderer
func (r *PDFRenderer) Format() domain.ReportFormat {
	return domain.ReportFormatPDF
}

// Render implements Renderer
func (r *PDFRenderer) Render(ctx context.Context, in ReportInput, outPath string) error {
	if in.Gradebook.Empty() {
		return fmt.Errorf("nothing to render for %q", in.Gradebook.Source)
	}

	html, err := r.BuildHTML(ctx, in)
	if err != nil {
		return err
	}

	pdf, err := r.print(ctx, html)
	if err != nil {
		return fmt.Errorf("failed to print pdf: %w", err)
	}

	if err := os.WriteFile(outPath, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}

	r.logger.DebugContext(ctx, "PDF written",
		slog.String("path", outPath),
		slog.Int("size_bytes", len(pdf)))
	return nil
}

func (r *PDFRenderer) print(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.timeout)
	defer cancelTimeout()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(pageMargin).
				WithMarginBottom(pageMargin).
				WithMarginLeft(pageMargin).
				WithMarginRight(pageMargin).
				Do(ctx)
			return err
		}),
	)
	return pdf, err
}

// BuildHTML renders the report document as a standalone HTML page with the
// charts and header image inlined as data URIs.
func (r *PDFRenderer) BuildHTML(ctx context.Context, in ReportInput) (string, error) {
	gb := in.Gradebook
	font := in.Report.FontName
	if font == "" {
		font = "Arial"
	}

	data := pdfDocument{
		SchoolName:  in.Report.SchoolName,
		ReportTitle: in.Report.ReportTitle,
		ClassLabel:  gb.ClassLabel,
		Subjects:    gb.Subjects,
		Highlight:   template.CSS("#" + in.Report.HighlightColor),
		HeaderFill:  template.CSS("#" + in.Report.HeaderColor),
		Font:        template.CSS(font),
	}

	if path, ok := headerImage(in.HeaderImage); ok {
		uri, err := dataURI(path)
		if err != nil {
			r.logger.WarnContext(ctx, "Failed to read header image", slog.String("path", path), slog.String("error", err.Error()))
		} else {
			data.HeaderImage = uri
		}
	}

	for _, student := range gb.Students {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		png, err := r.charts.Render(student, gb.Subjects)
		if err != nil {
			return "", fmt.Errorf("chart for student %s: %w", student.SerialNo, err)
		}

		serial, name := studentHeading(student)
		pg := pdfPage{
			Serial: serial,
			Name:   name,
			Chart:  template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
		}
		for _, exam := range student.Exams {
			row := pdfRow{Exam: exam.ExamName}
			for _, s := range gb.Subjects {
				row.Scores = append(row.Scores, FormatScore(exam.Score(s)))
			}
			pg.Rows = append(pg.Rows, row)
		}
		data.Pages = append(data.Pages, pg)
	}

	if in.Summary != nil && in.Report.IncludeSummary {
		data.Summary = in.Summary
	}

	var buf bytes.Buffer
	if err := pdfTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func dataURI(path string) (template.URL, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mime := http.DetectContentType(content)
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(content)), nil
}

type pdfDocument struct {
	SchoolName  string
	ReportTitle string
	ClassLabel  string
	HeaderImage template.URL
	Subjects    []string
	Pages       []pdfPage
	Summary     *domain.ClassSummary
	Highlight   template.CSS
	HeaderFill  template.CSS
	Font        template.CSS
}

type pdfPage struct {
	Serial string
	Name   string
	Rows   []pdfRow
	Chart  template.URL
}

type pdfRow struct {
	Exam   string
	Scores []string
}

var pdfTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"score": FormatScore,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
@page { size: A4 portrait; margin: 0.4in; }
body { font-family: {{.Font}}, sans-serif; margin: 0; }
.page { page-break-after: always; }
.page:last-child { page-break-after: auto; }
.header-image { display: block; margin: 0 auto 8px; max-width: 100%; }
h1, h2, h3 { text-align: center; margin: 4px 0; }
h1 { font-size: 16pt; }
h2 { font-size: 14pt; }
h3 { font-size: 12pt; }
.banner { background: {{.Highlight}}; font-weight: bold; padding: 6px 8px; margin: 12px 0; display: flex; justify-content: space-between; }
table { border-collapse: collapse; width: 100%; margin-bottom: 12px; }
th, td { border: 1px solid #000; padding: 4px; text-align: center; }
th { background: {{.HeaderFill}}; }
td.exam { font-weight: bold; text-align: left; }
img.chart { width: 100%; }
</style>
</head>
<body>
{{- range .Pages}}
<div class="page">
  {{- if $.HeaderImage}}<img class="header-image" src="{{$.HeaderImage}}">{{end}}
  {{- if $.SchoolName}}<h1>{{$.SchoolName}}</h1>{{end}}
  {{- if $.ReportTitle}}<h2>{{$.ReportTitle}}</h2>{{end}}
  <h3>{{$.ClassLabel}}</h3>
  <div class="banner"><span>{{.Serial}}</span><span>{{.Name}}</span></div>
  <table>
    <tr><th>EXAM</th>{{range $.Subjects}}<th>{{.}}</th>{{end}}</tr>
    {{- range .Rows}}
    <tr><td class="exam">{{.Exam}}</td>{{range .Scores}}<td>{{.}}</td>{{end}}</tr>
    {{- end}}
  </table>
  <img class="chart" src="{{.Chart}}">
</div>
{{- end}}
{{- with .Summary}}
<div class="page">
  <h3>{{$.ClassLabel}}</h3>
  <p>Students: {{.StudentCount}}</p>
  {{- range .Exams}}
  <h3>{{.ExamName}}</h3>
  <table>
    <tr><th>Subject</th><th>Count</th><th>Mean</th><th>Median</th><th>Min</th><th>Max</th></tr>
    {{- range .Subjects}}
    <tr><td class="exam">{{.Subject}}</td><td>{{.Count}}</td><td>{{score .Mean}}</td><td>{{score .Median}}</td><td>{{score .Min}}</td><td>{{score .Max}}</td></tr>
    {{- end}}
  </table>
  {{- end}}
</div>
{{- end}}
</body>
</html>
`))
