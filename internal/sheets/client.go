package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/internal/dataprocessing"
	"github.com/anaysharma/csv-xl-to-doc/internal/errors"
)

// Client reads spreadsheets through the Sheets API, or through the public
// xlsx export when no credentials are configured.
type Client struct {
	service    *gsheets.Service
	httpClient *http.Client
	exportURL  string
	limiter    *rate.Limiter
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient creates a Sheets client. Credentials come from the credentials
// file when set, else from the API key. Extra options are appended last so
// callers can override the endpoint or HTTP client. With neither credential
// the client downloads the spreadsheet from cfg.ExportURL instead, which
// works for sheets shared with anyone who has the link.
func NewClient(ctx context.Context, cfg config.SheetsConfig, logger *slog.Logger, extra ...option.ClientOption) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var opts []option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		credentialsJSON, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, errors.NewFileError(cfg.CredentialsFile, errors.StageConfig, err)
		}
		opts = append(opts, option.WithCredentialsJSON(credentialsJSON))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	var service *gsheets.Service
	if len(opts) > 0 {
		var err error
		service, err = gsheets.NewService(ctx, append(opts, extra...)...)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets service: %w", err)
		}
	} else {
		logger.InfoContext(ctx, "No Sheets credentials configured, using the public xlsx export")
	}

	exportURL := cfg.ExportURL
	if exportURL == "" {
		exportURL = config.DefaultSheetsExportURL
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = config.DefaultSheetsRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = config.DefaultSheetsBurst
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultSheetsTimeout
	}

	return &Client{
		service:    service,
		httpClient: http.DefaultClient,
		exportURL:  exportURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		timeout:    timeout,
		logger:     logger,
	}, nil
}

// Fetch returns one table per non-empty tab of the spreadsheet at url, in
// tab order.
func (c *Client) Fetch(ctx context.Context, url string) ([]dataprocessing.Table, error) {
	id, err := SpreadsheetID(url)
	if err != nil {
		return nil, err
	}

	if c.service == nil {
		tables, err := c.fetchExport(ctx, id)
		if err != nil {
			return nil, errors.NewFileError(id, errors.StageFetch, err)
		}
		c.logger.InfoContext(ctx, "Spreadsheet exported",
			slog.String("spreadsheet_id", id),
			slog.Int("sheets", len(tables)))
		return tables, nil
	}

	titles, err := c.sheetTitles(ctx, id)
	if err != nil {
		return nil, errors.NewFileError(id, errors.StageFetch, err)
	}

	c.logger.InfoContext(ctx, "Spreadsheet found",
		slog.String("spreadsheet_id", id),
		slog.Int("sheets", len(titles)))

	var tables []dataprocessing.Table
	for _, title := range titles {
		rows, err := c.sheetRows(ctx, id, title)
		if err != nil {
			return nil, errors.NewFileError(title, errors.StageFetch, err)
		}
		if len(rows) == 0 {
			c.logger.DebugContext(ctx, "Empty sheet ignored", slog.String("sheet", title))
			continue
		}
		tables = append(tables, dataprocessing.Table{Name: title, Rows: rows})
	}

	return tables, nil
}

// fetchExport downloads the spreadsheet as xlsx and returns one table per
// non-empty sheet, named by the sheet title
func (c *Client) fetchExport(ctx context.Context, id string) ([]dataprocessing.Table, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, fmt.Sprintf(c.exportURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download spreadsheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spreadsheet export returned %s; share the sheet with anyone who has the link or configure credentials", resp.Status)
	}

	return dataprocessing.ReadWorkbookFrom(resp.Body)
}

func (c *Client) sheetTitles(ctx context.Context, id string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	spreadsheet, err := c.service.Spreadsheets.Get(id).
		Fields("sheets.properties.title").
		Context(callCtx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	titles := make([]string, 0, len(spreadsheet.Sheets))
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil {
			continue
		}
		titles = append(titles, sheet.Properties.Title)
	}
	return titles, nil
}

func (c *Client) sheetRows(ctx context.Context, id, title string) ([][]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	values, err := c.service.Spreadsheets.Values.Get(id, quoteSheet(title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(callCtx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values: %w", err)
	}

	rows := make([][]string, len(values.Values))
	for i, row := range values.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		rows[i] = cells
	}
	return rows, nil
}

// quoteSheet turns a tab title into an A1 range covering the whole tab
func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
