package model

// State, Region and Zone name the three levels of the geographic hierarchy.
// The empty string means "none".
type (
	State  string
	Region string
	Zone   string
)

// Trend classifies the month-over-month direction of a metric.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// TrendFor maps a percent change onto a Trend using a ±2% dead band.
func TrendFor(percentChange float64) Trend {
	switch {
	case percentChange > 2:
		return TrendUp
	case percentChange < -2:
		return TrendDown
	default:
		return TrendStable
	}
}

// Brand is a product line sold in every region.
type Brand struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// MonthlySale is one point of a region's twelve-month series.
type MonthlySale struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
	Value int64  `json:"value"`
}

// Targets holds the sales targets derived for a region.
type Targets struct {
	Monthly   int64 `json:"monthly"`
	Quarterly int64 `json:"quarterly"`
	Yearly    int64 `json:"yearly"`
}

// RegionMetric is the sales summary attached to a region. PercentChange is nil
// when no comparison is available.
type RegionMetric struct {
	Name           Region           `json:"name"`
	Zone           Zone             `json:"zone"`
	States         []State          `json:"states"`
	Color          string           `json:"color,omitempty"`
	CurrentSales   float64          `json:"current_sales"`
	PreviousSales  float64          `json:"previous_sales"`
	PercentChange  *float64         `json:"percent_change"`
	Trend          Trend            `json:"trend"`
	MonthlySales   []MonthlySale    `json:"monthly_sales,omitempty"`
	BrandBreakdown map[string]int64 `json:"brand_breakdown,omitempty"`
	Targets        Targets          `json:"targets"`
}

// RegionDataset maps regions to their metrics. It may be partial.
type RegionDataset map[Region]RegionMetric

// MaxSales returns the largest CurrentSales in the dataset, or 0 when empty.
func (ds RegionDataset) MaxSales() float64 {
	var max float64
	for _, m := range ds {
		if m.CurrentSales > max {
			max = m.CurrentSales
		}
	}
	return max
}

// Lookup returns the metric for region, if any.
func (ds RegionDataset) Lookup(r Region) (RegionMetric, bool) {
	if ds == nil || r == "" {
		return RegionMetric{}, false
	}
	m, ok := ds[r]
	return m, ok
}

// Percent returns a pointer to v, for populating PercentChange.
func Percent(v float64) *float64 {
	return &v
}

// Point is a screen-space coordinate in map viewBox units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Offset is a manual label nudge in viewBox units.
type Offset struct {
	DX float64 `json:"dx" toml:"dx"`
	DY float64 `json:"dy" toml:"dy"`
}

// LabelPosition is the computed anchor for a state's label.
type LabelPosition struct {
	State State   `json:"state"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}
