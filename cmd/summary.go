package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/intelligrit/salesmap/internal/aggregator"
	"github.com/intelligrit/salesmap/internal/tooltip"
)

var summaryTop int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show zone totals and the best performing regions",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := newStore().Snapshot()
		ds := snap.Dataset
		o := aggregator.Summarize(ds)

		fmt.Printf("Sales Overview (seed %d)\n", snap.Seed)
		fmt.Printf("========================\n")
		fmt.Printf("Total sales:     %s\n", tooltip.FormatNaira(o.TotalSales))
		fmt.Printf("Previous month:  %s\n", tooltip.FormatNaira(o.TotalPrevious))
		fmt.Printf("Change:          %s\n", tooltip.FormatPercent(o.PercentChange))
		fmt.Printf("Active regions:  %d\n", o.ActiveRegions)
		fmt.Printf("Active brands:   %d\n", o.ActiveBrands)
		if o.Best != "" {
			fmt.Printf("Best / worst:    %s / %s\n", o.Best, o.Worst)
		}

		fmt.Printf("\nPer-Zone Breakdown\n")
		fmt.Printf("------------------\n")
		for _, z := range aggregator.ZoneTotals(cfg.Index(), ds) {
			fmt.Printf("  %-8s  sales: %14s  change: %7s  regions: %d\n",
				z.Name, tooltip.FormatNaira(z.TotalSales), tooltip.FormatPercent(z.PercentChange), len(z.Regions))
		}

		fmt.Printf("\nTop Regions\n")
		fmt.Printf("-----------\n")
		for i, m := range aggregator.TopRegions(ds, summaryTop) {
			change := "n/a"
			if m.PercentChange != nil {
				change = tooltip.FormatPercent(*m.PercentChange)
			}
			fmt.Printf("  %2d. %-14s  %14s  %7s  %s\n",
				i+1, m.Name, tooltip.FormatNaira(m.CurrentSales), change, m.Trend)
		}

		fmt.Printf("\nBrands\n")
		fmt.Printf("------\n")
		for _, b := range aggregator.BrandTotals(ds) {
			fmt.Printf("  %-20s  %14s\n", b.Brand.Name, tooltip.FormatNaira(float64(b.Sales)))
		}
		return nil
	},
}

func init() {
	summaryCmd.Flags().IntVar(&summaryTop, "top", 5, "Number of regions to list")
	rootCmd.AddCommand(summaryCmd)
}
