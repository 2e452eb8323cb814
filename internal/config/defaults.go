package config

import "github.com/intelligrit/salesmap/internal/model"

// DefaultZones returns the built-in three-zone split of the sales regions.
func DefaultZones() []ZoneConfig {
	return []ZoneConfig{
		{Key: "WEST", Name: "West", Color: "#2d5a27",
			Regions: []string{"Ibadan", "Benin", "Lagos North", "Lagos Central", "Lagos South"}},
		{Key: "EAST", Name: "East", Color: "#8b4513",
			Regions: []string{"Aba", "Enugu", "Onitsha", "Port Harcourt", "Uyo"}},
		{Key: "NORTH", Name: "North", Color: "#654321",
			Regions: []string{"Abuja", "Jos", "Kaduna", "Makurdi", "Yola"}},
	}
}

// DefaultRegions returns the built-in sales regions. Lagos, Benue and Kogi are
// listed under several regions; the last listing wins. Kano is in no region.
func DefaultRegions() []RegionConfig {
	return []RegionConfig{
		{Name: "Ibadan", Color: "#3cb371", States: []string{"Oyo", "Osun", "Ekiti"}},
		{Name: "Benin", Color: "#4169e1", States: []string{"Edo", "Ondo", "Kogi"}},
		{Name: "Lagos North", Color: "#32cd32", States: []string{"Ogun", "Lagos"}},
		{Name: "Lagos Central", Color: "#2e8b57", States: []string{"Lagos"}},
		{Name: "Lagos South", Color: "#00ced1", States: []string{"Lagos"}},
		{Name: "Aba", Color: "#da70d6", States: []string{"Abia", "Imo"}},
		{Name: "Enugu", Color: "#90ee90", States: []string{"Enugu", "Ebonyi"}},
		{Name: "Onitsha", Color: "#ffa500", States: []string{"Anambra", "Delta"}},
		{Name: "Port Harcourt", Color: "#8b0000", States: []string{"Rivers", "Bayelsa"}},
		{Name: "Uyo", Color: "#006400", States: []string{"Akwa Ibom", "Cross River"}},
		{Name: "Abuja", Color: "#d2b48c", States: []string{"FCT", "Niger", "Nasarawa", "Kwara"}},
		{Name: "Jos", Color: "#228b22", States: []string{"Plateau", "Taraba", "Benue"}},
		{Name: "Kaduna", Color: "#d2691e", States: []string{"Kaduna", "Katsina", "Zamfara", "Sokoto", "Kebbi"}},
		{Name: "Makurdi", Color: "#2f4f4f", States: []string{"Benue", "Kogi"}},
		{Name: "Yola", Color: "#8b4513", States: []string{"Adamawa", "Borno", "Yobe", "Gombe", "Bauchi", "Jigawa"}},
	}
}

// Hand-tuned nudges for states whose bounding-box center falls outside the
// shape or collides with a neighbour's label.
var defaultOffsets = map[string]model.Offset{
	"Lagos":    {DX: -6, DY: 4},
	"FCT":      {DX: 0, DY: 6},
	"Bayelsa":  {DX: -4, DY: 6},
	"Ebonyi":   {DX: 4, DY: 0},
	"Anambra":  {DX: -4, DY: -2},
	"Imo":      {DX: -2, DY: 4},
	"Abia":     {DX: 2, DY: 6},
	"Ekiti":    {DX: 2, DY: -2},
	"Osun":     {DX: -2, DY: 4},
	"Nasarawa": {DX: 6, DY: 6},
}
