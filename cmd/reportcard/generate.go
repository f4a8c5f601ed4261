package main

import (
	"github.com/spf13/cobra"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render reports for every score sheet in the input directory",
	Long: `Reads every CSV and XLSX file in the input directory and writes one
report per class table into the output directory, followed by a run
manifest. Tables without a recognizable header are skipped.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&inputDir, "input", "i", "", "input directory (default \""+config.DefaultInputDir+"\")")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	paths, err := config.GetPaths(a.cfg.Paths)
	if err != nil {
		return err
	}
	paths.LogPathResolution(a.logger)

	manifest, err := a.manager.Run(cmd.Context(), paths.InputDir, paths.OutputDir)
	printSummary(cmd, manifest)
	return err
}
