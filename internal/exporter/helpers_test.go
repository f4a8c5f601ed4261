package exporter

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

func testGradebook() *domain.Gradebook {
	return &domain.Gradebook{
		Source:     "Grade 5 - 5a",
		ClassLabel: "CLASS 5A",
		Subjects:   []string{"Math", "Eng", "Sci"},
		Students: []domain.StudentRecord{
			{
				SerialNo: "1",
				Name:     "Asha Verma",
				Exams: []domain.ExamRecord{
					{ExamName: "PT I", Scores: map[string]float64{"Math": 64, "Eng": 72, "Sci": 40}},
					{ExamName: "TERM I", Scores: map[string]float64{"Math": 70, "Eng": 0, "Sci": 55.5}},
					{ExamName: "PT II", Scores: map[string]float64{"Math": 40, "Eng": 80, "Sci": 61}},
				},
			},
			{
				SerialNo: "2",
				Name:     "Ravi <Kumar>",
				Exams: []domain.ExamRecord{
					{ExamName: "PT I", Scores: map[string]float64{"Math": 80, "Eng": 64, "Sci": 33}},
				},
			},
		},
	}
}

func testSummary() *domain.ClassSummary {
	return &domain.ClassSummary{
		StudentCount: 2,
		Exams: []domain.ExamSummary{
			{ExamName: "PT I", Subjects: []domain.SubjectStats{
				{Subject: "Math", Count: 2, Mean: 72, Median: 72, Min: 64, Max: 80},
			}},
		},
	}
}

func testReportConfig() config.ReportConfig {
	return config.Default().Report
}

// writeTestPNG writes a solid w x h PNG and returns its path
func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 0x42, G: 0x85, B: 0xF4, A: 0xff})
		}
	}
	path := filepath.Join(t.TempDir(), "Picture.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}
