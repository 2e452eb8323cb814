package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/intelligrit/salesmap/internal/tooltip"
)

var legendDark bool

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Print the performance color legend",
	RunE: func(cmd *cobra.Command, args []string) error {
		dark := cfg.Map.Dark
		if cmd.Flags().Changed("dark") {
			dark = legendDark
		}

		fmt.Println(lipgloss.NewStyle().Bold(true).Render(tooltip.LegendTitle))
		for _, e := range tooltip.Legend(dark) {
			swatch := lipgloss.NewStyle().Background(lipgloss.Color(e.Color)).Render("    ")
			fmt.Printf("%s  %-10s %s\n", swatch, e.Label, e.Color)
		}
		return nil
	},
}

func init() {
	legendCmd.Flags().BoolVar(&legendDark, "dark", false, "Show the dark theme colors")
	rootCmd.AddCommand(legendCmd)
}
