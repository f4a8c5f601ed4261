package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/internal/sheets"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet <url>",
	Short: "Render reports from a Google Sheet",
	Long: `Fetches every tab of a Google Sheet and renders one report per tab.
Credentials come from sheets.credentials_file or sheets.api_key in the
configuration (REPORTCARD_SHEETS_CREDENTIALS_FILE / REPORTCARD_SHEETS_API_KEY).
Without either, the sheet is downloaded through its public xlsx export, which
works when it is shared with anyone who has the link.`,
	Args: cobra.ExactArgs(1),
	RunE: runSheet,
}

func init() {
	rootCmd.AddCommand(sheetCmd)
}

func runSheet(cmd *cobra.Command, args []string) error {
	url := args[0]
	if _, err := sheets.SpreadsheetID(url); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	client, err := sheets.NewClient(cmd.Context(), a.cfg.Sheets, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}

	tables, err := client.Fetch(cmd.Context(), url)
	if err != nil {
		return err
	}

	paths, err := config.GetPaths(a.cfg.Paths)
	if err != nil {
		return err
	}

	manifest, err := a.manager.RunTables(cmd.Context(), url, tables, paths.OutputDir)
	printSummary(cmd, manifest)
	return err
}
