package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

func testStudent() domain.StudentRecord {
	return domain.StudentRecord{
		SerialNo: "1",
		Name:     "Asha",
		Exams: []domain.ExamRecord{
			{ExamName: "PT I", Scores: map[string]float64{"Math": 64, "Eng": 72}},
			{ExamName: "TERM I", Scores: map[string]float64{"Math": 70}},
			{ExamName: "PT II", Scores: map[string]float64{"Math": 40, "Eng": 80}},
		},
	}
}

func TestRender_PNG(t *testing.T) {
	r := NewRenderer(config.ChartConfig{Width: 4, Height: 2})

	data, err := r.Render(testStudent(), []string{"Math", "Eng"})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestPlot_AxisAndLegend(t *testing.T) {
	r := NewRenderer(config.Default().Chart)

	p, err := r.Plot(testStudent(), []string{"Math", "Eng"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, p.Y.Min)
	assert.Equal(t, 90.0, p.Y.Max)
	assert.Equal(t, "Marks (out of 80)", p.Y.Label.Text)
	assert.True(t, p.Legend.Top)
	assert.Zero(t, p.X.Tick.Label.Rotation)
}

func TestPlot_RotatesManySubjects(t *testing.T) {
	subjects := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	p, err := NewRenderer(config.Default().Chart).Plot(testStudent(), subjects)
	require.NoError(t, err)

	assert.NotZero(t, p.X.Tick.Label.Rotation)
}

func TestRender_NoSubjects(t *testing.T) {
	_, err := NewRenderer(config.ChartConfig{Width: 2, Height: 1}).Render(testStudent(), nil)
	assert.NoError(t, err)
}

func TestBuildSeries(t *testing.T) {
	series := BuildSeries(testStudent(), []string{"Math", "Eng"}, []string{"#4285f4", "EA4335"})

	require.Len(t, series, 3)
	assert.Equal(t, Series{Name: "PT I", Values: []float64{64, 72}, Color: "#4285F4"}, series[0])
	assert.Equal(t, Series{Name: "TERM I", Values: []float64{70, 0}, Color: "#EA4335"}, series[1])
	assert.Equal(t, "#4285F4", series[2].Color, "palette cycles")
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#34A853")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x34), c.R)
	assert.Equal(t, uint8(0xA8), c.G)
	assert.Equal(t, uint8(0x53), c.B)

	short, err := ParseHexColor("fff")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), short.G)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("#GGGGGG")
	assert.Error(t, err)
}
