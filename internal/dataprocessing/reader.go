package dataprocessing

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is one named grid of string fields: a CSV file, a workbook sheet or
// a Google Sheet tab.
type Table struct {
	Name string
	Rows [][]string
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ReadLines decodes r as UTF-8, replacing invalid bytes with U+FFFD and
// dropping a leading byte order mark. Lines end with "\n", "\r\n" or a lone
// "\r", and fields split on every ",". Quoted fields are not recognised.
func ReadLines(r io.Reader) ([][]string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}

	text := newlines.Replace(string(data))
	if text == "" {
		return [][]string{}, nil
	}
	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(line, ",")
	}
	return rows, nil
}

// ReadCSVFile reads a CSV file with ReadLines
func ReadCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ReadLines(f)
}

// ReadWorkbook returns one table per worksheet, in workbook order. Sheets
// without any rows are left out.
func ReadWorkbook(path string) ([]Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return workbookTables(f)
}

// ReadWorkbookFrom is ReadWorkbook for a workbook streamed from r, such as
// a downloaded spreadsheet export
func ReadWorkbookFrom(r io.Reader) ([]Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return workbookTables(f)
}

func workbookTables(f *excelize.File) ([]Table, error) {
	var tables []Table
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		tables = append(tables, Table{Name: sheet, Rows: rows})
	}
	return tables, nil
}
