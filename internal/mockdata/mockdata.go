// Package mockdata synthesizes demo sales figures for every region.
package mockdata

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/intelligrit/salesmap/internal/geo"
	"github.com/intelligrit/salesmap/internal/model"
)

// Brands sold in every region, in breakdown order.
var Brands = []model.Brand{
	{ID: "star", Name: "Star Lager", Color: "#e31937"},
	{ID: "gulder", Name: "Gulder", Color: "#c4a747"},
	{ID: "heineken", Name: "Heineken", Color: "#00a650"},
	{ID: "legend", Name: "Legend Extra Stout", Color: "#1a1a1a"},
	{ID: "life", Name: "Life Continental", Color: "#0066b3"},
	{ID: "goldberg", Name: "Goldberg", Color: "#d4a574"},
	{ID: "maltina", Name: "Maltina", Color: "#8b4513"},
	{ID: "amstel", Name: "Amstel Malta", Color: "#c8102e"},
	{ID: "fayrouz", Name: "Fayrouz", Color: "#ff6b35"},
	{ID: "climax", Name: "Climax Energy", Color: "#ffd700"},
}

var brandWeights = map[string]float64{
	"star":     0.25,
	"gulder":   0.15,
	"heineken": 0.18,
	"legend":   0.08,
	"life":     0.06,
	"goldberg": 0.10,
	"maltina":  0.08,
	"amstel":   0.05,
	"fayrouz":  0.03,
	"climax":   0.02,
}

type direction int

const (
	increasing direction = iota
	decreasing
	stable
)

const months = 12

// Generator produces datasets from a seeded source, so the same seed always
// yields the same figures.
type Generator struct {
	idx    *geo.Index
	colors map[model.Region]string
	now    func() time.Time
	seed   uint64
}

// Option configures a Generator.
type Option func(*Generator)

// WithColors attaches accent colors to the generated regions.
func WithColors(c map[model.Region]string) Option {
	return func(g *Generator) { g.colors = c }
}

// WithClock fixes the clock used to label months.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New returns a generator for the regions of idx.
func New(idx *geo.Index, seed uint64, opts ...Option) *Generator {
	g := &Generator{idx: idx, seed: seed, now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Seed returns the seed the next Generate call will use.
func (g *Generator) Seed() uint64 { return g.seed }

// Next advances to a fresh seed and generates from it.
func (g *Generator) Next() model.RegionDataset {
	g.seed++
	return g.Generate()
}

// Generate builds a dataset for every region in the index.
func (g *Generator) Generate() model.RegionDataset {
	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	now := g.now()
	ds := make(model.RegionDataset)

	for _, region := range g.idx.Regions() {
		base := 50000 + rng.Float64()*150000
		dir := direction(rng.IntN(3))
		series := monthlySales(rng, now, base, dir)

		current := series[len(series)-1].Value
		previous := series[len(series)-2].Value
		m := model.RegionMetric{
			Name:           region,
			States:         g.idx.StatesOf(region),
			Color:          g.colors[region],
			CurrentSales:   float64(current),
			PreviousSales:  float64(previous),
			MonthlySales:   series,
			BrandBreakdown: brandBreakdown(rng, current),
			Targets: model.Targets{
				Monthly:   int64(math.Round(float64(current) * 1.1)),
				Quarterly: int64(math.Round(float64(current) * 3.3)),
				Yearly:    int64(math.Round(float64(current) * 12 * 1.05)),
			},
		}
		if z, ok := g.idx.ZoneOfRegion(region); ok {
			m.Zone = z
		}
		if pct, ok := PercentChange(float64(current), float64(previous)); ok {
			m.PercentChange = model.Percent(pct)
			m.Trend = model.TrendFor(pct)
		} else {
			m.Trend = model.TrendStable
		}
		ds[region] = m
	}
	return ds
}

// PercentChange returns (current-previous)/previous as a percentage rounded to
// one decimal. It is undefined when previous is zero.
func PercentChange(current, previous float64) (float64, bool) {
	if previous == 0 {
		return 0, false
	}
	return math.Round((current-previous)/previous*1000) / 10, true
}

func monthlySales(rng *rand.Rand, now time.Time, base float64, dir direction) []model.MonthlySale {
	out := make([]model.MonthlySale, 0, months)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := months - 1; i >= 0; i-- {
		date := first.AddDate(0, -i, 0)
		step := float64(months - 1 - i)
		variation := (rng.Float64() - 0.5) * base * 0.3

		var v float64
		switch dir {
		case increasing:
			v = base + step*base*0.05 + variation
		case decreasing:
			v = base - step*base*0.04 + variation
		default:
			v = base + variation
		}
		out = append(out, model.MonthlySale{
			Month: date.Format("Jan"),
			Year:  date.Year(),
			Value: int64(math.Max(0, math.Round(v))),
		})
	}
	return out
}

// brandBreakdown splits total across brands by weight with ±15% jitter. The
// last brand takes whatever is left, floored at zero.
func brandBreakdown(rng *rand.Rand, total int64) map[string]int64 {
	out := make(map[string]int64, len(Brands))
	remaining := total
	for i, b := range Brands {
		var v int64
		if i == len(Brands)-1 {
			v = remaining
		} else {
			w := brandWeights[b.ID]
			jitter := 1 + (rng.Float64()-0.5)*0.3
			v = int64(math.Round(float64(total) * w * jitter))
		}
		if v < 0 {
			v = 0
		}
		out[b.ID] = v
		remaining -= v
	}
	return out
}
