// Package choropleth resolves the fill of every state from performance data
// and the current selection.
package choropleth

import (
	"github.com/intelligrit/salesmap/internal/model"
	"github.com/intelligrit/salesmap/internal/palette"
	"github.com/intelligrit/salesmap/internal/selection"
)

// Resolver is the part of the geo index the painter needs.
type Resolver interface {
	RegionOf(model.State) (model.Region, bool)
}

// Emphasis holds brightness boosts, in percent, per highlight tier.
type Emphasis struct {
	SelectedRegion float64
	HoveredRegion  float64
	HoveredState   float64
}

// DefaultEmphasis returns the boosts used when none are configured.
func DefaultEmphasis(dark bool) Emphasis {
	if dark {
		return Emphasis{SelectedRegion: 25, HoveredRegion: 20, HoveredState: 30}
	}
	return Emphasis{SelectedRegion: 35, HoveredRegion: 30, HoveredState: 40}
}

// Highlight names which rule produced a fill.
type Highlight string

const (
	HighlightNone           Highlight = ""
	HighlightSelectedState  Highlight = "selected-state"
	HighlightSelectedRegion Highlight = "selected-region"
	HighlightHoveredRegion  Highlight = "hovered-region"
	HighlightHoveredState   Highlight = "hovered-state"
)

// Fill is the resolved presentation of one state.
type Fill struct {
	Color         string         `json:"color"`
	Opacity       float64        `json:"opacity"`
	StrokeWidth   float64        `json:"stroke_width"`
	StrokeOpacity float64        `json:"stroke_opacity"`
	Bucket        palette.Bucket `json:"-"`
	Highlight     Highlight      `json:"highlight,omitempty"`
}

// Painter computes fills for one dataset and theme.
type Painter struct {
	idx      Resolver
	ds       model.RegionDataset
	dark     bool
	emphasis Emphasis
	maxSales float64
}

// NewPainter captures the dataset and precomputes the sales maximum used for
// opacity scaling.
func NewPainter(idx Resolver, ds model.RegionDataset, dark bool, emphasis Emphasis) *Painter {
	return &Painter{idx: idx, ds: ds, dark: dark, emphasis: emphasis, maxSales: ds.MaxSales()}
}

// Dark reports the theme the painter was built for.
func (p *Painter) Dark() bool { return p.dark }

// Fill resolves the fill for state under selection s. Rules, first match wins:
// selected state, selected region, hovered region (region mode only),
// hovered state, plain performance color.
func (p *Painter) Fill(state model.State, s selection.State) Fill {
	f := Fill{StrokeWidth: 0.75, StrokeOpacity: 0.6}

	region, ok := p.idx.RegionOf(state)
	if !ok {
		f.Color, f.Opacity, f.Bucket = palette.NeutralColor(p.dark), palette.OpacityFor(0, 0), palette.NoData
		return f
	}

	inSelected := s.SelectedRegion == region
	inHovered := s.Mode == selection.ModeRegion && s.HoveredRegion == region
	if inSelected || inHovered {
		f.StrokeWidth = 1.5
	}
	if inSelected {
		f.StrokeOpacity = 1
	}

	metric, ok := p.ds.Lookup(region)
	if !ok {
		f.Color, f.Opacity, f.Bucket = palette.NeutralColor(p.dark), palette.OpacityFor(0, 0), palette.NoData
		return f
	}

	f.Bucket = palette.BucketFor(metric.PercentChange)
	base := f.Bucket.Color(p.dark)
	f.Opacity = palette.OpacityFor(metric.CurrentSales, p.maxSales)

	switch {
	case s.SelectedState != "" && s.SelectedState == state:
		f.Color, f.Highlight = palette.AccentColor(p.dark), HighlightSelectedState
	case inSelected:
		f.Color, f.Highlight = palette.AdjustBrightness(base, p.emphasis.SelectedRegion), HighlightSelectedRegion
	case inHovered:
		f.Color, f.Highlight = palette.AdjustBrightness(base, p.emphasis.HoveredRegion), HighlightHoveredRegion
	case s.HoveredState != "" && s.HoveredState == state:
		f.Color, f.Highlight = palette.AdjustBrightness(base, p.emphasis.HoveredState), HighlightHoveredState
	default:
		f.Color = base
	}
	return f
}
