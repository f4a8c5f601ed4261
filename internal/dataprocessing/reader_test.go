package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
)

func TestReadLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{
			name:     "unix newlines",
			input:    "a,b\nc,d\n",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "windows newlines",
			input:    "a,b\r\nc,d\r\n",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "classic mac newlines",
			input:    "a,b\rc,d\r",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "mixed newlines",
			input:    "a\r\nb\rc\nd",
			expected: [][]string{{"a"}, {"b"}, {"c"}, {"d"}},
		},
		{
			name:     "byte order mark dropped",
			input:    "\ufeffS. No.,Student Name\n",
			expected: [][]string{{"S. No.", "Student Name"}},
		},
		{
			name:     "quotes are not special",
			input:    `"Verma, Asha",1` + "\n",
			expected: [][]string{{`"Verma`, ` Asha"`, "1"}},
		},
		{
			name:     "invalid bytes replaced",
			input:    "a\xffb,c",
			expected: [][]string{{"a\ufffdb", "c"}},
		},
		{
			name:     "blank lines kept",
			input:    "a\n\nb",
			expected: [][]string{{"a"}, {""}, {"b"}},
		},
		{
			name:     "empty input",
			input:    "",
			expected: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ReadLines(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rows)
		})
	}
}

func TestReadLines_ClassicMacFileParses(t *testing.T) {
	input := "S. No.,Student Name,EXAM,Math,80\r1,Ann,PT I,40,80\r,,TERM I,20,80\r,,PT II,10,80\r"

	rows, err := ReadLines(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	gb, err := NewParser(config.Default().Parser).Parse(rows)
	require.NoError(t, err)
	require.Len(t, gb.Students, 1)
	assert.Equal(t, []string{"Math"}, gb.Subjects)
	assert.Len(t, gb.Students[0].Exams, 3)
	assert.InDelta(t, 40.0, gb.Students[0].Exams[0].Score("Math"), 1e-9)
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Grade 5 - 5a.csv")
	require.NoError(t, os.WriteFile(path, []byte("S. No.,Student Name,EXAM,Math,\n1,Asha,PT I,40,50\n"), 0644))

	rows, err := ReadCSVFile(path)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), "5A")
	require.NoError(t, f.SetSheetRow("5A", "A1", &[]interface{}{"S. No.", "Student Name", "EXAM", "Math", ""}))
	require.NoError(t, f.SetSheetRow("5A", "A2", &[]interface{}{1, "Asha", "PT I", 40, 50}))
	_, err := f.NewSheet("Empty")
	require.NoError(t, err)
	_, err = f.NewSheet("5B")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("5B", "A1", &[]interface{}{"S. No.", "Student Name", "EXAM"}))

	path := filepath.Join(t.TempDir(), "Grade 5.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tables, err := ReadWorkbook(path)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	assert.Equal(t, "5A", tables[0].Name)
	assert.Equal(t, []string{"1", "Asha", "PT I", "40", "50"}, tables[0].Rows[1])
	assert.Equal(t, "5B", tables[1].Name)
}

func TestReadWorkbook_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := ReadWorkbook(path)
	assert.Error(t, err)
}
