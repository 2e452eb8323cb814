// Package geo resolves states to their owning region and zone.
package geo

import (
	"sort"

	"github.com/intelligrit/salesmap/internal/model"
)

// RegionStates lists the states that make up a region, in declaration order.
type RegionStates struct {
	Region model.Region
	States []model.State
}

// ZoneRegions lists the regions that make up a zone.
type ZoneRegions struct {
	Zone    model.Zone
	Name    string
	Regions []model.Region
}

// Index is an immutable state→region→zone lookup. Build one per mounted view or
// share a single instance read-only.
type Index struct {
	stateToRegion  map[model.State]model.Region
	stateToZone    map[model.State]model.Zone
	regionToZone   map[model.Region]model.Zone
	regionToStates map[model.Region][]model.State
	zoneNames      map[model.Zone]string
	regions        []model.Region
	zones          []model.Zone
}

// New builds the lookup tables. When a state appears under more than one region
// the last region wins.
func New(regionToStates []RegionStates, zoneToRegions []ZoneRegions) *Index {
	idx := &Index{
		stateToRegion:  make(map[model.State]model.Region),
		stateToZone:    make(map[model.State]model.Zone),
		regionToZone:   make(map[model.Region]model.Zone),
		regionToStates: make(map[model.Region][]model.State),
		zoneNames:      make(map[model.Zone]string),
	}

	for _, rs := range regionToStates {
		if _, seen := idx.regionToStates[rs.Region]; !seen {
			idx.regions = append(idx.regions, rs.Region)
		}
		idx.regionToStates[rs.Region] = append([]model.State(nil), rs.States...)
		for _, s := range rs.States {
			idx.stateToRegion[s] = rs.Region
		}
	}

	for _, zr := range zoneToRegions {
		if _, seen := idx.zoneNames[zr.Zone]; !seen {
			idx.zones = append(idx.zones, zr.Zone)
		}
		name := zr.Name
		if name == "" {
			name = string(zr.Zone)
		}
		idx.zoneNames[zr.Zone] = name
		for _, r := range zr.Regions {
			idx.regionToZone[r] = zr.Zone
		}
	}

	// Zone goes through the state's winning region, not through every region
	// that lists it.
	for s, r := range idx.stateToRegion {
		if z, ok := idx.regionToZone[r]; ok {
			idx.stateToZone[s] = z
		}
	}

	return idx
}

// RegionOf returns the region that owns state.
func (idx *Index) RegionOf(s model.State) (model.Region, bool) {
	r, ok := idx.stateToRegion[s]
	return r, ok
}

// ZoneOf returns the zone that owns state.
func (idx *Index) ZoneOf(s model.State) (model.Zone, bool) {
	z, ok := idx.stateToZone[s]
	return z, ok
}

// ZoneOfRegion returns the zone a region belongs to.
func (idx *Index) ZoneOfRegion(r model.Region) (model.Zone, bool) {
	z, ok := idx.regionToZone[r]
	return z, ok
}

// ZoneName returns the display name of a zone, or "" when unknown.
func (idx *Index) ZoneName(z model.Zone) string {
	return idx.zoneNames[z]
}

// StatesOf returns the states declared for a region. Because of the
// last-writer rule some of them may resolve to a different region.
func (idx *Index) StatesOf(r model.Region) []model.State {
	return append([]model.State(nil), idx.regionToStates[r]...)
}

// Regions returns the regions in declaration order.
func (idx *Index) Regions() []model.Region {
	return append([]model.Region(nil), idx.regions...)
}

// Zones returns the zones in declaration order.
func (idx *Index) Zones() []model.Zone {
	return append([]model.Zone(nil), idx.zones...)
}

// RegionsOf returns the regions that belong to a zone, in declaration order.
func (idx *Index) RegionsOf(z model.Zone) []model.Region {
	var out []model.Region
	for _, r := range idx.regions {
		if idx.regionToZone[r] == z {
			out = append(out, r)
		}
	}
	return out
}

// States returns every state that resolves to a region, sorted by name.
func (idx *Index) States() []model.State {
	out := make([]model.State, 0, len(idx.stateToRegion))
	for s := range idx.stateToRegion {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
