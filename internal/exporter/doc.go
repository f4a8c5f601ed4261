// Package exporter renders gradebooks into report documents.
//
// Every format implements Renderer:
//
// XLSXRenderer: one A4 worksheet per student with the school heading, a
// highlighted student banner, the marks table and a native clustered column
// chart, plus an optional class Summary worksheet.
//
// PDFRenderer: the same page layout as HTML with a PNG chart per student,
// printed to PDF by headless Chrome.
//
// Example usage:
//
//	renderer, err := exporter.NewRenderer(domain.ReportFormatXLSX, cfg.Chart, logger)
//	if err != nil {
//	    return err
//	}
//	err = renderer.Render(ctx, exporter.ReportInput{
//	    Gradebook:   gb,
//	    Summary:     &summary,
//	    Report:      cfg.Report,
//	    HeaderImage: paths.HeaderImage,
//	}, "output-docs/Grade 5 - 5a_Report.xlsx")
package exporter
