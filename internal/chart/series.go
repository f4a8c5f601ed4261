package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// Series is one exam's bars across all subjects
type Series struct {
	Name   string
	Values []float64
	// Color is "#RRGGBB", taken from the palette in exam order
	Color string
}

// BuildSeries returns one series per exam of student, in block order. A
// subject without a score contributes 0. Palette colors are cycled.
func BuildSeries(student domain.StudentRecord, subjects []string, palette []string) []Series {
	series := make([]Series, len(student.Exams))
	for i, exam := range student.Exams {
		values := make([]float64, len(subjects))
		for k, subject := range subjects {
			values[k] = exam.Score(subject)
		}
		series[i] = Series{
			Name:   exam.ExamName,
			Values: values,
			Color:  paletteColor(palette, i),
		}
	}
	return series
}

func paletteColor(palette []string, i int) string {
	if len(palette) == 0 {
		return "#4285F4"
	}
	c := palette[i%len(palette)]
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	return strings.ToUpper(c)
}

// ParseHexColor converts "#RRGGBB" or "#RGB" into an opaque color
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
