package dataprocessing

import (
	"strconv"
	"strings"

	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

// csvRows builds rows the way ReadLines would from text
func csvRows(lines ...string) [][]string {
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(line, ",")
	}
	return rows
}

func examNamesOf(s domain.StudentRecord) []string {
	names := make([]string, len(s.Exams))
	for i, e := range s.Exams {
		names[i] = e.ExamName
	}
	return names
}
