package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/internal/errors"
)

// fakeSheetsAPI serves the two Sheets endpoints the client uses
func fakeSheetsAPI(t *testing.T, tabs map[string][][]interface{}, order []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if strings.Contains(r.URL.Path, "/values/") {
			rng := r.URL.Path[strings.Index(r.URL.Path, "/values/")+len("/values/"):]
			title := strings.Trim(rng, "'")
			values, ok := tabs[title]
			if !ok {
				http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"range": rng, "values": values})
			return
		}

		if strings.HasSuffix(r.URL.Path, "/spreadsheets/sheet-1") {
			var sheets []map[string]interface{}
			for _, title := range order {
				sheets = append(sheets, map[string]interface{}{"properties": map[string]interface{}{"title": title}})
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"sheets": sheets})
			return
		}

		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
	}))
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(context.Background(),
		config.SheetsConfig{APIKey: "test-key", RequestsPerSecond: 1000, Burst: 10},
		nil,
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return client
}

func TestFetch(t *testing.T) {
	server := fakeSheetsAPI(t, map[string][][]interface{}{
		"5A":    {{"S. No.", "Student Name", "EXAM", "Math", ""}, {"1", "Asha", "PT I", 40, 50}},
		"Empty": {},
		"5B":    {{"S. No.", "Student Name", "EXAM"}},
	}, []string{"5A", "Empty", "5B"})
	defer server.Close()

	tables, err := newTestClient(t, server).Fetch(context.Background(), "https://docs.google.com/spreadsheets/d/sheet-1/edit")
	require.NoError(t, err)
	require.Len(t, tables, 2)

	assert.Equal(t, "5A", tables[0].Name)
	assert.Equal(t, []string{"1", "Asha", "PT I", "40", "50"}, tables[0].Rows[1])
	assert.Equal(t, "5B", tables[1].Name)
}

func TestFetch_InvalidURL(t *testing.T) {
	server := fakeSheetsAPI(t, nil, nil)
	defer server.Close()

	_, err := newTestClient(t, server).Fetch(context.Background(), "https://example.com/nothing")
	assert.True(t, errors.Is(err, errors.ErrInvalidSheetURL))
}

func TestFetch_APIError(t *testing.T) {
	server := fakeSheetsAPI(t, nil, nil)
	defer server.Close()

	_, err := newTestClient(t, server).Fetch(context.Background(), "https://docs.google.com/spreadsheets/d/unknown/edit")
	require.Error(t, err)
	assert.Equal(t, errors.StageFetch, errors.StageOf(err))
}

func TestNewClient_MissingCredentialsFile(t *testing.T) {
	_, err := NewClient(context.Background(), config.SheetsConfig{CredentialsFile: "/does/not/exist.json"}, nil)

	require.Error(t, err)
	assert.Equal(t, errors.StageConfig, errors.StageOf(err))
}

func TestQuoteSheet(t *testing.T) {
	assert.Equal(t, "'5A'", quoteSheet("5A"))
	assert.Equal(t, "'Ravi''s class'", quoteSheet("Ravi's class"))
}

// fakeExport serves a workbook at /d/<id>/export for the known id
func fakeExport(t *testing.T, id string, workbook []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/d/"+id+"/export" || r.URL.Query().Get("format") != "xlsx" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write(workbook)
	}))
}

func testWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), "5A")
	require.NoError(t, f.SetSheetRow("5A", "A1", &[]interface{}{"S. No.", "Student Name", "EXAM", "Math", ""}))
	require.NoError(t, f.SetSheetRow("5A", "A2", &[]interface{}{"1", "Asha", "PT I", "40", "50"}))
	_, err := f.NewSheet("Empty")
	require.NoError(t, err)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestFetch_PublicExportWithoutCredentials(t *testing.T) {
	server := fakeExport(t, "sheet-1", testWorkbook(t))
	defer server.Close()

	client, err := NewClient(context.Background(), config.SheetsConfig{
		RequestsPerSecond: 1000,
		Burst:             10,
		ExportURL:         server.URL + "/d/%s/export?format=xlsx",
	}, nil)
	require.NoError(t, err)

	tables, err := client.Fetch(context.Background(), "https://docs.google.com/spreadsheets/d/sheet-1/edit#gid=0")
	require.NoError(t, err)
	require.Len(t, tables, 1)

	assert.Equal(t, "5A", tables[0].Name)
	assert.Equal(t, []string{"1", "Asha", "PT I", "40", "50"}, tables[0].Rows[1])
}

func TestFetch_PublicExportNotShared(t *testing.T) {
	server := fakeExport(t, "sheet-1", testWorkbook(t))
	defer server.Close()

	client, err := NewClient(context.Background(), config.SheetsConfig{
		ExportURL: server.URL + "/d/%s/export?format=xlsx",
	}, nil)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "https://docs.google.com/spreadsheets/d/private-1/edit")
	require.Error(t, err)
	assert.Equal(t, errors.StageFetch, errors.StageOf(err))
	assert.Contains(t, err.Error(), "404")
}
