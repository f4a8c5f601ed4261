package dataprocessing

import "strings"

// Header column labels that identify the header row
const (
	HeaderSerialNo    = "S. No."
	HeaderStudentName = "Student Name"
	HeaderExam        = "EXAM"
)

// firstSubjectField is the index of the first subject name in the header
// row; each subject occupies two columns (obtained, total).
const firstSubjectField = 3

// Header is the detected header row of a table
type Header struct {
	Row      int
	Subjects []string
}

// DetectHeader returns the first row with at least one field past "EXAM"
// whose trimmed first three fields are exactly "S. No.", "Student Name" and
// "EXAM". A bare three-field label row is passed over. Subjects are read from
// fields 3, 5, 7, ... and stop at the first empty field or the end of the row.
func DetectHeader(rows [][]string) (Header, bool) {
	for i, row := range rows {
		if len(row) <= firstSubjectField {
			continue
		}
		if strings.TrimSpace(row[0]) != HeaderSerialNo ||
			strings.TrimSpace(row[1]) != HeaderStudentName ||
			strings.TrimSpace(row[2]) != HeaderExam {
			continue
		}

		subjects := make([]string, 0, (len(row)-firstSubjectField+1)/2)
		for idx := firstSubjectField; idx < len(row); idx += 2 {
			name := strings.TrimSpace(row[idx])
			if name == "" {
				break
			}
			subjects = append(subjects, name)
		}
		return Header{Row: i, Subjects: subjects}, true
	}
	return Header{Row: -1}, false
}
