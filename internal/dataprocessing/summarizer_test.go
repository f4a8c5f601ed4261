package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

func TestSummarize(t *testing.T) {
	gb := &domain.Gradebook{
		Subjects: []string{"Math", "Eng"},
		Students: []domain.StudentRecord{
			{SerialNo: "1", Exams: []domain.ExamRecord{
				{ExamName: "PT I", Scores: map[string]float64{"Math": 40, "Eng": 80}},
				{ExamName: "TERM I", Scores: map[string]float64{"Math": 60, "Eng": 70}},
			}},
			{SerialNo: "2", Exams: []domain.ExamRecord{
				{ExamName: "PT I", Scores: map[string]float64{"Math": 60, "Eng": 20}},
			}},
			{SerialNo: "3", Exams: []domain.ExamRecord{
				{ExamName: "PT I", Scores: map[string]float64{"Math": 80}},
			}},
		},
	}

	summary := NewSummarizer(nil).Summarize(gb)

	assert.Equal(t, 3, summary.StudentCount)
	require.Len(t, summary.Exams, 2)
	assert.Equal(t, "PT I", summary.Exams[0].ExamName)
	assert.Equal(t, "TERM I", summary.Exams[1].ExamName)

	math := summary.Exams[0].Subjects[0]
	assert.Equal(t, "Math", math.Subject)
	assert.Equal(t, 3, math.Count)
	assert.InDelta(t, 60, math.Mean, 1e-9)
	assert.InDelta(t, 60, math.Median, 1e-9)
	assert.InDelta(t, 40, math.Min, 1e-9)
	assert.InDelta(t, 80, math.Max, 1e-9)

	eng := summary.Exams[0].Subjects[1]
	assert.InDelta(t, 100.0/3, eng.Mean, 1e-9)
	assert.InDelta(t, 0, eng.Min, 1e-9, "missing score counts as zero")

	term := summary.Exams[1].Subjects[0]
	assert.Equal(t, 1, term.Count)
	assert.InDelta(t, 60, term.Mean, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	summary := NewSummarizer(nil).Summarize(&domain.Gradebook{Subjects: []string{"Math"}})

	assert.Zero(t, summary.StudentCount)
	assert.Empty(t, summary.Exams)

	assert.Empty(t, NewSummarizer(nil).Summarize(nil).Exams)
}
