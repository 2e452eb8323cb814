package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Write the generated dataset as JSON to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(newStore().Snapshot())
	},
}

func init() {
	rootCmd.AddCommand(datasetCmd)
}
