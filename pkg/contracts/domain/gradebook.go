package domain

// ExamRecord holds one exam's normalized scores for a student.
// Scores has exactly one entry per subject detected in the header.
type ExamRecord struct {
	ExamName string             `json:"exam_name"`
	Scores   map[string]float64 `json:"scores"`
}

// Score returns the normalized score for subject, or 0 when absent
func (e ExamRecord) Score(subject string) float64 {
	return e.Scores[subject]
}

// StudentRecord is one student block: the serial number and name from the
// block's first row plus one ExamRecord per consumed row.
type StudentRecord struct {
	SerialNo string       `json:"serial_no"`
	Name     string       `json:"name"`
	Exams    []ExamRecord `json:"exams"`
}

// Gradebook is the parse result for one input table (a CSV file, a workbook
// sheet or a Google Sheet tab).
type Gradebook struct {
	Source     string          `json:"source"`
	ClassLabel string          `json:"class_label"`
	Subjects   []string        `json:"subjects"`
	Students   []StudentRecord `json:"students"`
	HeaderRow  int             `json:"header_row"`
}

// Empty reports whether the gradebook has nothing to render
func (g *Gradebook) Empty() bool {
	return g == nil || len(g.Students) == 0
}

// SubjectStats summarizes one subject's normalized scores across a class
type SubjectStats struct {
	Subject string  `json:"subject"`
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// ExamSummary holds per-subject statistics for one exam
type ExamSummary struct {
	ExamName string         `json:"exam_name"`
	Subjects []SubjectStats `json:"subjects"`
}

// ClassSummary is the class-wide result analysis of a gradebook
type ClassSummary struct {
	StudentCount int           `json:"student_count"`
	Exams        []ExamSummary `json:"exams"`
}
