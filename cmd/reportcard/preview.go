package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/anaysharma/csv-xl-to-doc/internal/dataprocessing"
	"github.com/anaysharma/csv-xl-to-doc/internal/errors"
	"github.com/anaysharma/csv-xl-to-doc/internal/files"
	"github.com/anaysharma/csv-xl-to-doc/internal/infrastructure"
	"github.com/anaysharma/csv-xl-to-doc/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Print the parsed marks of a CSV or XLSX file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := args[0]
	input, err := files.NewDiscovery("").Stat(path)
	if err != nil {
		return errors.NewReadError(filepath.Base(path), err)
	}

	logger := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	processor := dataprocessing.NewProcessor(cfg.Parser, logger)

	tables, err := processor.LoadTables(input)
	if err != nil {
		return err
	}

	for _, table := range tables {
		gb, err := processor.Process(table)
		if err != nil {
			if errors.IsSkippable(err) {
				cmd.PrintErrf("skipping %s: %v\n", table.Name, err)
				continue
			}
			return err
		}
		gb.ClassLabel = files.ClassLabel(gb.Source, cfg.Report.ClassPrefix)
		if err := preview.Render(cmd.OutOrStdout(), gb); err != nil {
			return err
		}
	}

	cmd.PrintErrf("previewed %s (%d tables)\n", filepath.Base(path), len(tables))
	return nil
}
