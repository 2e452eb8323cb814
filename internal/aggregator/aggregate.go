// Package aggregator rolls region metrics up into zone totals and rankings.
package aggregator

import (
	"sort"

	"github.com/intelligrit/salesmap/internal/geo"
	"github.com/intelligrit/salesmap/internal/mockdata"
	"github.com/intelligrit/salesmap/internal/model"
)

// ZoneTotal is the sum of a zone's region metrics.
type ZoneTotal struct {
	Zone          model.Zone     `json:"zone"`
	Name          string         `json:"name"`
	Regions       []model.Region `json:"regions"`
	TotalSales    float64        `json:"total_sales"`
	TotalPrevious float64        `json:"total_previous"`
	PercentChange float64        `json:"percent_change"`
	Trend         model.Trend    `json:"trend"`
}

// Overview is the headline summary across all regions.
type Overview struct {
	TotalSales    float64      `json:"total_sales"`
	TotalPrevious float64      `json:"total_previous"`
	PercentChange float64      `json:"percent_change"`
	ActiveRegions int          `json:"active_regions"`
	ActiveBrands  int          `json:"active_brands"`
	Best          model.Region `json:"best,omitempty"`
	Worst         model.Region `json:"worst,omitempty"`
}

// BrandTotal is one brand's sales summed over all regions.
type BrandTotal struct {
	Brand model.Brand `json:"brand"`
	Sales int64       `json:"sales"`
}

// ZoneTotals sums current and previous sales per zone, in zone declaration
// order. Regions missing from the dataset contribute nothing.
func ZoneTotals(idx *geo.Index, ds model.RegionDataset) []ZoneTotal {
	var out []ZoneTotal
	for _, z := range idx.Zones() {
		zt := ZoneTotal{Zone: z, Name: idx.ZoneName(z), Regions: idx.RegionsOf(z)}
		for _, r := range zt.Regions {
			if m, ok := ds.Lookup(r); ok {
				zt.TotalSales += m.CurrentSales
				zt.TotalPrevious += m.PreviousSales
			}
		}
		// No previous sales means no comparison; report flat.
		zt.PercentChange, _ = mockdata.PercentChange(zt.TotalSales, zt.TotalPrevious)
		zt.Trend = model.TrendFor(zt.PercentChange)
		out = append(out, zt)
	}
	return out
}

// Summarize computes the overview figures for the dashboard header.
func Summarize(ds model.RegionDataset) Overview {
	var o Overview
	brands := make(map[string]bool)
	var bestPct, worstPct float64

	for _, r := range sortedRegions(ds) {
		m := ds[r]
		o.TotalSales += m.CurrentSales
		o.TotalPrevious += m.PreviousSales
		if m.CurrentSales > 0 {
			o.ActiveRegions++
		}
		for id, v := range m.BrandBreakdown {
			if v > 0 {
				brands[id] = true
			}
		}
		if m.PercentChange == nil {
			continue
		}
		if o.Best == "" || *m.PercentChange > bestPct {
			o.Best, bestPct = r, *m.PercentChange
		}
		if o.Worst == "" || *m.PercentChange < worstPct {
			o.Worst, worstPct = r, *m.PercentChange
		}
	}
	o.ActiveBrands = len(brands)
	o.PercentChange, _ = mockdata.PercentChange(o.TotalSales, o.TotalPrevious)
	return o
}

// TopRegions returns up to n regions by current sales, highest first. Ties
// break by name so the order is stable.
func TopRegions(ds model.RegionDataset, n int) []model.RegionMetric {
	regions := sortedRegions(ds)
	sort.SliceStable(regions, func(i, j int) bool {
		return ds[regions[i]].CurrentSales > ds[regions[j]].CurrentSales
	})
	if n >= 0 && n < len(regions) {
		regions = regions[:n]
	}
	out := make([]model.RegionMetric, 0, len(regions))
	for _, r := range regions {
		out = append(out, ds[r])
	}
	return out
}

// BrandTotals sums each brand's breakdown over the dataset, highest first.
func BrandTotals(ds model.RegionDataset) []BrandTotal {
	sums := make(map[string]int64)
	for _, m := range ds {
		for id, v := range m.BrandBreakdown {
			sums[id] += v
		}
	}
	out := make([]BrandTotal, 0, len(mockdata.Brands))
	for _, b := range mockdata.Brands {
		out = append(out, BrandTotal{Brand: b, Sales: sums[b.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sales > out[j].Sales })
	return out
}

func sortedRegions(ds model.RegionDataset) []model.Region {
	out := make([]model.Region, 0, len(ds))
	for r := range ds {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
