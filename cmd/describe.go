package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/intelligrit/salesmap/internal/model"
	"github.com/intelligrit/salesmap/internal/selection"
	"github.com/intelligrit/salesmap/internal/tooltip"
)

var describeMode string

var describeCmd = &cobra.Command{
	Use:   "describe <state>",
	Short: "Print the tooltip shown when hovering a state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := selection.ParseMode(describeMode)
		if err != nil {
			return err
		}

		info := tooltip.Describe(cfg.Index(), newStore().Dataset(), model.State(args[0]))
		fmt.Println(info.Headline(mode))
		fmt.Println(info.Subline(mode))
		if info.HasSales() {
			fmt.Println(info.SalesLine())
			fmt.Printf("%s (%s)\n", info.ChangeLine(), info.Trend)
		}
		return nil
	},
}

func init() {
	describeCmd.Flags().StringVar(&describeMode, "mode", "region", "Selection mode: region or state")
	rootCmd.AddCommand(describeCmd)
}
