// Package dataprocessing turns raw exam-score tables into gradebooks.
//
// # Architecture
//
// The package is organized into four components:
//
// 1. Readers: decode CSV text or xlsx workbooks into rows of string fields
// 2. Header detection: find the "S. No., Student Name, EXAM" row and its subjects
// 3. Parser: walk student blocks and normalize every score to the reporting scale
// 4. Summarizer: class-wide statistics per exam and subject
//
// # Usage
//
//	processor := dataprocessing.NewProcessor(cfg.Parser, logger)
//	tables, err := processor.LoadTables("CSV/Grade 5 - 5A.csv")
//	if err != nil {
//	    return err
//	}
//	for _, table := range tables {
//	    gb, err := processor.Process(table)
//	    ...
//	}
//
// # Data Flow
//
//	CSV/XLSX → Reader → rows → Header Detector → Parser (Normalizer) → Gradebook → Summarizer
//
// # Error Handling
//
// Malformed cells never fail a parse: unparseable scores fall back to
// defaults and short rows are padded. The only parse error is a missing
// header row (errors.ErrNoHeader); an input with a header but no student
// blocks yields errors.ErrNoStudents from the Processor.
//
// # Known Quirk
//
// A student block that starts fewer than ExamsPerStudent rows before the end
// of input keeps only the rows that exist. No error is reported.
package dataprocessing
