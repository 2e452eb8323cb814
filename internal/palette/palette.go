// Package palette maps month-over-month performance onto choropleth colors.
package palette

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Bucket is a performance band. Higher values are more favourable.
type Bucket int

const (
	NoData Bucket = iota - 1
	Poor
	Decline
	SlightDecline
	Moderate
	Good
	Excellent
)

type swatch struct {
	label string
	light string
	dark  string
}

var swatches = map[Bucket]swatch{
	Excellent:     {"Excellent (>10%)", "#16a34a", "#22c55e"},
	Good:          {"Good (5-10%)", "#22c55e", "#4ade80"},
	Moderate:      {"Moderate (0-5%)", "#84cc16", "#a3e635"},
	SlightDecline: {"Slight Decline (-5-0%)", "#eab308", "#facc15"},
	Decline:       {"Decline (-10 to -5%)", "#f97316", "#fb923c"},
	Poor:          {"Poor (<-10%)", "#dc2626", "#ef4444"},
	NoData:        {"No data", "#d1d5db", "#374151"},
}

// Selected-state accent, independent of performance.
const (
	AccentLight = "#3b82f6"
	AccentDark  = "#60a5fa"
)

func (b Bucket) String() string {
	switch b {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Moderate:
		return "moderate"
	case SlightDecline:
		return "slight_decline"
	case Decline:
		return "decline"
	case Poor:
		return "poor"
	default:
		return "no_data"
	}
}

// Label is the legend text for the bucket.
func (b Bucket) Label() string {
	return swatches[b].label
}

// Color returns the bucket's hex color for the given theme.
func (b Bucket) Color(dark bool) string {
	sw, ok := swatches[b]
	if !ok {
		sw = swatches[NoData]
	}
	if dark {
		return sw.dark
	}
	return sw.light
}

// BucketFor classifies a percent change. Lower bounds are inclusive, so 5.0
// is Good and -5.0 is SlightDecline. nil and NaN are NoData.
func BucketFor(pct *float64) Bucket {
	if pct == nil || math.IsNaN(*pct) {
		return NoData
	}
	switch v := *pct; {
	case v >= 10:
		return Excellent
	case v >= 5:
		return Good
	case v >= 0:
		return Moderate
	case v >= -5:
		return SlightDecline
	case v >= -10:
		return Decline
	default:
		return Poor
	}
}

// ColorFor returns the choropleth color for a percent change.
func ColorFor(pct *float64, dark bool) string {
	return BucketFor(pct).Color(dark)
}

// NeutralColor is the no-data gray.
func NeutralColor(dark bool) string {
	return NoData.Color(dark)
}

// AccentColor is the fixed color for a directly selected state.
func AccentColor(dark bool) string {
	if dark {
		return AccentDark
	}
	return AccentLight
}

// AdjustBrightness adds round(2.55*percent) to each RGB channel of a #rrggbb
// color, clamping to [0,255]. Hue is not modelled. Malformed input is returned
// unchanged.
func AdjustBrightness(hex string, percent float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	r, g, b := c.RGB255()
	amt := int(math.Round(2.55 * percent))
	return fmt.Sprintf("#%02x%02x%02x", clamp(int(r)+amt), clamp(int(g)+amt), clamp(int(b)+amt))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

const (
	minOpacity = 0.4
	maxOpacity = 1.0
)

// OpacityFor scales sales linearly into [0.4, 1.0] relative to maxSales.
// Zero sales or a zero maximum yields the floor.
func OpacityFor(sales, maxSales float64) float64 {
	if sales <= 0 || maxSales <= 0 {
		return minOpacity
	}
	o := minOpacity + (sales/maxSales)*(maxOpacity-minOpacity)
	return math.Min(maxOpacity, math.Max(minOpacity, o))
}

// LegendEntry is one row of the static performance legend.
type LegendEntry struct {
	Bucket Bucket `json:"-"`
	Key    string `json:"key"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

// Legend returns the six performance buckets, best first. It does not depend
// on the current data.
func Legend(dark bool) []LegendEntry {
	order := []Bucket{Excellent, Good, Moderate, SlightDecline, Decline, Poor}
	out := make([]LegendEntry, 0, len(order))
	for _, b := range order {
		out = append(out, LegendEntry{Bucket: b, Key: b.String(), Label: b.Label(), Color: b.Color(dark)})
	}
	return out
}
