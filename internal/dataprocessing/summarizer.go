package dataprocessing

import (
	"log/slog"

	"github.com/montanaflynn/stats"

	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// Summarizer computes class-wide statistics for a gradebook
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a new summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Summarize returns, for every exam name in first-seen order and every
// subject in header order, the mean, median, min and max of the students'
// normalized scores.
func (s *Summarizer) Summarize(gb *domain.Gradebook) domain.ClassSummary {
	summary := domain.ClassSummary{Exams: []domain.ExamSummary{}}
	if gb.Empty() {
		return summary
	}
	summary.StudentCount = len(gb.Students)

	var examOrder []string
	scores := make(map[string]map[string]stats.Float64Data)

	for _, student := range gb.Students {
		for _, exam := range student.Exams {
			bySubject, ok := scores[exam.ExamName]
			if !ok {
				bySubject = make(map[string]stats.Float64Data, len(gb.Subjects))
				scores[exam.ExamName] = bySubject
				examOrder = append(examOrder, exam.ExamName)
			}
			for _, subject := range gb.Subjects {
				bySubject[subject] = append(bySubject[subject], exam.Score(subject))
			}
		}
	}

	for _, examName := range examOrder {
		exam := domain.ExamSummary{
			ExamName: examName,
			Subjects: make([]domain.SubjectStats, 0, len(gb.Subjects)),
		}
		for _, subject := range gb.Subjects {
			exam.Subjects = append(exam.Subjects, s.subjectStats(subject, scores[examName][subject]))
		}
		summary.Exams = append(summary.Exams, exam)
	}

	return summary
}

func (s *Summarizer) subjectStats(subject string, data stats.Float64Data) domain.SubjectStats {
	result := domain.SubjectStats{Subject: subject, Count: data.Len()}
	if data.Len() == 0 {
		return result
	}

	var err error
	if result.Mean, err = stats.Mean(data); err != nil {
		s.logger.Debug("mean unavailable", slog.String("subject", subject), slog.String("error", err.Error()))
	}
	if result.Median, err = stats.Median(data); err != nil {
		s.logger.Debug("median unavailable", slog.String("subject", subject), slog.String("error", err.Error()))
	}
	result.Min, _ = stats.Min(data)
	result.Max, _ = stats.Max(data)

	return result
}
