package dataprocessing

import (
	"fmt"
	"log/slog"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/internal/errors"
	"github.com/anaysharma/csv-xl-to-doc/internal/files"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// Processor reads input files into tables and parses tables into gradebooks
type Processor struct {
	parser     *Parser
	summarizer *Summarizer
	logger     *slog.Logger
}

// NewProcessor creates a processor from parser configuration
func NewProcessor(cfg config.ParserConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		parser:     NewParser(cfg),
		summarizer: NewSummarizer(logger),
		logger:     logger,
	}
}

// LoadTables reads one input file. A CSV file is a single table named after
// its base name; each sheet of a workbook is a table named
// "<workbook base> - <sheet>".
func (p *Processor) LoadTables(input files.FileInfo) ([]Table, error) {
	switch input.Kind {
	case files.KindCSV:
		rows, err := ReadCSVFile(input.Path)
		if err != nil {
			return nil, errors.NewReadError(input.Name, err)
		}
		return []Table{{Name: input.BaseName(), Rows: rows}}, nil

	case files.KindWorkbook:
		sheets, err := ReadWorkbook(input.Path)
		if err != nil {
			return nil, errors.NewReadError(input.Name, err)
		}
		tables := make([]Table, len(sheets))
		for i, sheet := range sheets {
			tables[i] = Table{Name: files.TableName(input.BaseName(), sheet.Name), Rows: sheet.Rows}
		}
		p.logger.Debug("Workbook loaded",
			slog.String("file", input.Name),
			slog.Int("sheets", len(tables)))
		return tables, nil

	default:
		return nil, errors.NewReadError(input.Name, fmt.Errorf("%w: %q", errors.ErrUnsupportedInput, input.Kind))
	}
}

// Process parses a table into a gradebook. A table without a header yields
// errors.ErrNoHeader and one without student blocks errors.ErrNoStudents,
// both wrapped in a parse-stage FileError.
func (p *Processor) Process(table Table) (*domain.Gradebook, error) {
	gb, err := p.parser.Parse(table.Rows)
	if err != nil {
		return nil, errors.NewParseError(table.Name, err)
	}
	gb.Source = table.Name

	if gb.Empty() {
		return gb, errors.NewParseError(table.Name, errors.ErrNoStudents)
	}

	p.logger.Debug("Table parsed",
		slog.String("table", table.Name),
		slog.Int("header_row", gb.HeaderRow),
		slog.Int("subjects", len(gb.Subjects)),
		slog.Int("students", len(gb.Students)))

	return gb, nil
}

// Summarize computes the class summary of gb
func (p *Processor) Summarize(gb *domain.Gradebook) domain.ClassSummary {
	return p.summarizer.Summarize(gb)
}
