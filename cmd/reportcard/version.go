package main

import (
	"github.com/spf13/cobra"

	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("reportcard version %s\n", version)
		cmd.Printf("%s\n", contracts.GetFullVersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
