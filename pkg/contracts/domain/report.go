package domain

import (
	"time"
)

// ReportFormat defines the document format of a rendered report
type ReportFormat string

const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatPDF  ReportFormat = "pdf"
)

// Extension returns the file extension, including the dot, for the format
func (f ReportFormat) Extension() string {
	return "." + string(f)
}

// Valid reports whether the format is one the exporter can render
func (f ReportFormat) Valid() bool {
	switch f {
	case ReportFormatXLSX, ReportFormatPDF:
		return true
	}
	return false
}

// ReportStatus represents the outcome of processing one input table
type ReportStatus string

const (
	ReportStatusCompleted ReportStatus = "completed"
	ReportStatusSkipped   ReportStatus = "skipped"
	ReportStatusFailed    ReportStatus = "failed"
)

// Report describes a rendered (or attempted) report document
type Report struct {
	Source       string        `json:"source"`
	ClassLabel   string        `json:"class_label"`
	Format       ReportFormat  `json:"format"`
	FilePath     string        `json:"file_path,omitempty"`
	FileSize     int64         `json:"file_size,omitempty"`
	Status       ReportStatus  `json:"status"`
	StudentCount int           `json:"student_count"`
	SubjectCount int           `json:"subject_count"`
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration"`
	GeneratedAt  time.Time     `json:"generated_at"`
}
