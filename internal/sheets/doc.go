// Package sheets fetches score tables from a Google Sheet.
//
// Every tab of the spreadsheet becomes one table named after the tab. Cell
// values are read as displayed in the sheet. Requests are paced with a
// token bucket so large spreadsheets stay under the API quota.
//
// Example usage:
//
//	client, err := sheets.NewClient(ctx, cfg.Sheets, logger)
//	tables, err := client.Fetch(ctx, "https://docs.google.com/spreadsheets/d/<id>/edit")
package sheets
