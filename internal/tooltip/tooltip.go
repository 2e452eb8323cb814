// Package tooltip builds the hover summary shown for a state.
package tooltip

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/intelligrit/salesmap/internal/geo"
	"github.com/intelligrit/salesmap/internal/model"
	"github.com/intelligrit/salesmap/internal/palette"
	"github.com/intelligrit/salesmap/internal/selection"
)

// NotAvailable is shown for any missing hierarchy level.
const NotAvailable = "N/A"

// Info is everything the tooltip shows for one state. Missing data degrades to
// "N/A", zeros and a stable trend.
type Info struct {
	State         model.State `json:"state"`
	Region        string      `json:"region"`
	Zone          string      `json:"zone"`
	Sales         float64     `json:"sales"`
	PreviousSales float64     `json:"previous_sales"`
	PercentChange float64     `json:"percent_change"`
	Trend         model.Trend `json:"trend"`
}

// Describe resolves the tooltip for state. It never fails.
func Describe(idx *geo.Index, ds model.RegionDataset, state model.State) Info {
	info := Info{State: state, Region: NotAvailable, Zone: NotAvailable, Trend: model.TrendStable}

	region, ok := idx.RegionOf(state)
	if ok {
		info.Region = string(region)
	}
	if zone, ok := idx.ZoneOf(state); ok {
		if name := idx.ZoneName(zone); name != "" {
			info.Zone = name
		}
	}

	m, ok := ds.Lookup(region)
	if !ok {
		return info
	}
	info.Sales = m.CurrentSales
	info.PreviousSales = m.PreviousSales
	if m.PercentChange != nil && !math.IsNaN(*m.PercentChange) {
		info.PercentChange = *m.PercentChange
	}
	if m.Trend != "" {
		info.Trend = m.Trend
	}
	return info
}

// Headline is the bold first line. Region mode leads with the zone, state mode
// with the state.
func (i Info) Headline(mode selection.Mode) string {
	if mode == selection.ModeState {
		return string(i.State)
	}
	return i.Zone + " Zone"
}

// Subline is the muted second line.
func (i Info) Subline(mode selection.Mode) string {
	if mode == selection.ModeState {
		return i.Region + " • " + i.Zone + " Zone"
	}
	return i.Region + " • " + string(i.State)
}

// HasSales reports whether the sales block should be shown.
func (i Info) HasSales() bool {
	return i.Sales > 0
}

// SalesLine formats the current sales figure.
func (i Info) SalesLine() string {
	return "Sales: " + FormatNaira(i.Sales)
}

// ChangeLine formats the percent change, e.g. "+5.2% vs last month".
func (i Info) ChangeLine() string {
	return FormatPercent(i.PercentChange) + " vs last month"
}

var printer = message.NewPrinter(language.English)

// FormatNaira formats a whole-naira amount with thousands separators.
func FormatNaira(v float64) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return sign + "₦" + printer.Sprintf("%d", int64(math.Round(v)))
}

// FormatPercent renders a signed percentage with at most one decimal.
func FormatPercent(p float64) string {
	s := strconv.FormatFloat(math.Round(p*10)/10, 'f', -1, 64)
	if p > 0 {
		s = "+" + s
	}
	return s + "%"
}

// LegendTitle heads the performance legend.
const LegendTitle = "Performance (% Change)"

// Legend returns the static performance legend for the theme.
func Legend(dark bool) []palette.LegendEntry {
	return palette.Legend(dark)
}
