package dataprocessing

import (
	"fmt"
	"strings"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/internal/errors"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// Parser extracts student blocks from the rows of one table
type Parser struct {
	examsPerStudent int
	examNames       []string
	normalizer      Normalizer
}

// NewParser creates a parser from configuration
func NewParser(cfg config.ParserConfig) *Parser {
	exams := cfg.ExamsPerStudent
	if exams <= 0 {
		exams = config.DefaultExamsPerStudent
	}
	names := cfg.ExamNames
	if len(names) == 0 {
		names = config.DefaultExamNames
	}
	return &Parser{
		examsPerStudent: exams,
		examNames:       append([]string(nil), names...),
		normalizer:      NewNormalizer(cfg),
	}
}

// Parse detects the header and reads every student block after it.
// It returns errors.ErrNoHeader when no header row exists; a header with no
// student blocks is not an error here and yields an empty gradebook.
func (p *Parser) Parse(rows [][]string) (*domain.Gradebook, error) {
	header, ok := DetectHeader(rows)
	if !ok {
		return nil, errors.ErrNoHeader
	}

	gb := &domain.Gradebook{
		Subjects:  header.Subjects,
		HeaderRow: header.Row,
		Students:  []domain.StudentRecord{},
	}

	width := firstSubjectField + 2*len(header.Subjects)

	i := header.Row + 1
	for i < len(rows) {
		row := rows[i]
		serial := field(row, 0)
		if !isSerial(serial) {
			i++
			continue
		}

		student := domain.StudentRecord{
			SerialNo: serial,
			Name:     field(row, 1),
			Exams:    make([]domain.ExamRecord, 0, p.examsPerStudent),
		}

		// Rows past the end of input are dropped silently.
		for offset := 0; offset < p.examsPerStudent && i+offset < len(rows); offset++ {
			student.Exams = append(student.Exams, p.parseExam(pad(rows[i+offset], width), offset, header.Subjects))
		}

		gb.Students = append(gb.Students, student)
		i += p.examsPerStudent
	}

	return gb, nil
}

func (p *Parser) parseExam(row []string, offset int, subjects []string) domain.ExamRecord {
	name := strings.TrimSpace(row[2])
	if name == "" {
		name = p.ExamName(offset)
	}

	scores := make(map[string]float64, len(subjects))
	for k, subject := range subjects {
		scores[subject] = p.normalizer.Normalize(row[firstSubjectField+2*k], row[firstSubjectField+1+2*k])
	}

	return domain.ExamRecord{ExamName: name, Scores: scores}
}

// ExamName returns the fallback name for the exam at offset within a block
func (p *Parser) ExamName(offset int) string {
	if offset < len(p.examNames) {
		return p.examNames[offset]
	}
	return fmt.Sprintf("Term %d", offset+1)
}

// isSerial reports whether s is a non-empty run of ASCII digits
func isSerial(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func field(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// pad returns row extended with empty fields to at least width
func pad(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
