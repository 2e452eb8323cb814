package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/intelligrit/salesmap/internal/config"
	"github.com/intelligrit/salesmap/internal/geo"
	"github.com/intelligrit/salesmap/internal/model"
)

func TestLastWriterWins(t *testing.T) {
	idx := geo.New(
		[]geo.RegionStates{
			{Region: "A", States: []model.State{"s1", "s2"}},
			{Region: "B", States: []model.State{"s2"}},
		},
		[]geo.ZoneRegions{
			{Zone: "Z1", Regions: []model.Region{"A"}},
			{Zone: "Z2", Regions: []model.Region{"B"}},
		},
	)

	r, ok := idx.RegionOf("s2")
	assert.True(t, ok)
	assert.Equal(t, model.Region("B"), r)

	z, ok := idx.ZoneOf("s2")
	assert.True(t, ok)
	assert.Equal(t, model.Zone("Z2"), z)

	assert.Equal(t, "Z1", idx.ZoneName("Z1"), "zone name falls back to key")
}

func TestUnknownState(t *testing.T) {
	idx := config.Defaults().Index()
	_, ok := idx.RegionOf("Atlantis")
	assert.False(t, ok)
	_, ok = idx.ZoneOf("Atlantis")
	assert.False(t, ok)
}

func TestRegionWithoutZone(t *testing.T) {
	idx := geo.New(
		[]geo.RegionStates{{Region: "Orphan", States: []model.State{"s"}}},
		nil,
	)
	r, ok := idx.RegionOf("s")
	assert.True(t, ok)
	assert.Equal(t, model.Region("Orphan"), r)
	_, ok = idx.ZoneOf("s")
	assert.False(t, ok)
}

func TestDefaultHierarchyComposition(t *testing.T) {
	cfg := config.Defaults()
	cfg.Zones = config.DefaultZones()
	cfg.Regions = config.DefaultRegions()
	idx := cfg.Index()

	for _, s := range idx.States() {
		r, ok := idx.RegionOf(s)
		if !assert.True(t, ok) {
			continue
		}
		want, ok := idx.ZoneOfRegion(r)
		assert.True(t, ok, "region %s has a zone", r)
		got, ok := idx.ZoneOf(s)
		assert.True(t, ok)
		assert.Equal(t, want, got, "zone of %s", s)
	}

	lagos, _ := idx.RegionOf("Lagos")
	assert.Equal(t, model.Region("Lagos South"), lagos)
	benue, _ := idx.RegionOf("Benue")
	assert.Equal(t, model.Region("Makurdi"), benue)
	_, ok := idx.RegionOf("Kano")
	assert.False(t, ok)

	assert.Len(t, idx.Regions(), 15)
	assert.Equal(t, []model.Zone{"WEST", "EAST", "NORTH"}, idx.Zones())
	assert.Equal(t, "West", idx.ZoneName("WEST"))
	assert.Equal(t, []model.Region{"Abuja", "Jos", "Kaduna", "Makurdi", "Yola"}, idx.RegionsOf("NORTH"))
}
