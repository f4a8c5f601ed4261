// Package preview prints a parsed gradebook to the terminal so a table can
// be checked before any document is rendered.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/anaysharma/csv-xl-to-doc/internal/exporter"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// Styles used by the preview
type Styles struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Banner lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Border lipgloss.Color
}

// DefaultStyles mirrors the report colors: a blue student banner and pink
// table headers.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4285F4")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Banner: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#CFE2F3")).Padding(0, 1),
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E1E2E")).Background(lipgloss.Color("#EAD1DC")).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right),
		Border: lipgloss.Color("#45475A"),
	}
}

// Render writes the class label, the subjects and one marks table per
// student to w.
func Render(w io.Writer, gb *domain.Gradebook) error {
	return RenderWithStyles(w, gb, DefaultStyles())
}

// RenderWithStyles is Render with custom styles
func RenderWithStyles(w io.Writer, gb *domain.Gradebook, styles Styles) error {
	if gb == nil {
		return fmt.Errorf("no gradebook to preview")
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(gb.ClassLabel))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(fmt.Sprintf("%s · %d students · subjects: %s",
		gb.Source, len(gb.Students), strings.Join(gb.Subjects, ", "))))
	b.WriteString("\n")

	for _, student := range gb.Students {
		b.WriteString("\n")
		b.WriteString(styles.Banner.Render(fmt.Sprintf("S. No.: %s   Student Name: %s", student.SerialNo, student.Name)))
		b.WriteString("\n")
		b.WriteString(marksTable(gb.Subjects, student, styles).String())
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func marksTable(subjects []string, student domain.StudentRecord, styles Styles) *table.Table {
	headers := append([]string{"EXAM"}, subjects...)

	rows := make([][]string, 0, len(student.Exams))
	for _, exam := range student.Exams {
		row := make([]string, 0, len(subjects)+1)
		row = append(row, exam.ExamName)
		for _, s := range subjects {
			row = append(row, exporter.FormatScore(exam.Score(s)))
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.Header
			case col == 0:
				return styles.Cell.Align(lipgloss.Left).Bold(true)
			default:
				return styles.Cell
			}
		})
}
