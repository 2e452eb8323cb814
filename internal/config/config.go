package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/intelligrit/salesmap/internal/choropleth"
	"github.com/intelligrit/salesmap/internal/geo"
	"github.com/intelligrit/salesmap/internal/model"
)

// Config holds all user-facing configuration for salesmap.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Map      MapConfig      `toml:"map"`
	Data     DataConfig     `toml:"data"`
	Emphasis EmphasisConfig `toml:"emphasis"`
	Labels   LabelsConfig   `toml:"labels"`
	Zones    []ZoneConfig   `toml:"zones"`
	Regions  []RegionConfig `toml:"regions"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// EventsPerSecond throttles POST /api/events per server.
	EventsPerSecond float64 `toml:"events_per_second"`
}

type MapConfig struct {
	Dark              bool   `toml:"dark"`
	InitialMode       string `toml:"initial_mode"`
	ClearOnModeSwitch bool   `toml:"clear_on_mode_switch"`
	ShowLabels        bool   `toml:"show_labels"`
}

type DataConfig struct {
	Seed uint64 `toml:"seed"`
}

// EmphasisConfig holds brightness boosts, in percent, per highlight tier.
type EmphasisConfig struct {
	Light EmphasisLevels `toml:"light"`
	Dark  EmphasisLevels `toml:"dark"`
}

type EmphasisLevels struct {
	SelectedRegion float64 `toml:"selected_region"`
	HoveredRegion  float64 `toml:"hovered_region"`
	HoveredState   float64 `toml:"hovered_state"`
}

type LabelsConfig struct {
	Delay   time.Duration           `toml:"delay"`
	Offsets map[string]model.Offset `toml:"offsets"`
}

type ZoneConfig struct {
	Key     string   `toml:"key"`
	Name    string   `toml:"name"`
	Color   string   `toml:"color"`
	Regions []string `toml:"regions"`
}

type RegionConfig struct {
	Name   string   `toml:"name"`
	Color  string   `toml:"color"`
	States []string `toml:"states"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	offsets := make(map[string]model.Offset, len(defaultOffsets))
	for k, v := range defaultOffsets {
		offsets[k] = v
	}
	return &Config{
		Server: ServerConfig{Host: "localhost", Port: 8080, EventsPerSecond: 60},
		Map:    MapConfig{InitialMode: "region", ShowLabels: true},
		Data:   DataConfig{Seed: 1},
		Emphasis: EmphasisConfig{
			Light: EmphasisLevels{SelectedRegion: 35, HoveredRegion: 30, HoveredState: 40},
			Dark:  EmphasisLevels{SelectedRegion: 25, HoveredRegion: 20, HoveredState: 30},
		},
		Labels: LabelsConfig{Delay: 50 * time.Millisecond, Offsets: offsets},
	}
}

// Load reads a TOML config file and applies SALESMAP_* environment overrides.
// If the file does not exist, built-in defaults are used.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// The hierarchy is replaced wholesale, never merged with the defaults.
	if len(cfg.Zones) == 0 && len(cfg.Regions) == 0 {
		cfg.Zones = DefaultZones()
		cfg.Regions = DefaultRegions()
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("SALESMAP_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SALESMAP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SALESMAP_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("SALESMAP_DARK"); v != "" {
		dark, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SALESMAP_DARK: %w", err)
		}
		cfg.Map.Dark = dark
	}
	if v := os.Getenv("SALESMAP_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SALESMAP_SEED: %w", err)
		}
		cfg.Data.Seed = seed
	}
	if v := os.Getenv("SALESMAP_MODE"); v != "" {
		cfg.Map.InitialMode = v
	}
	return nil
}

// Validate rejects hierarchies that break the zone→region→state tree.
func (c *Config) Validate() error {
	if len(c.Regions) == 0 {
		return errors.New("config: no regions defined")
	}
	if c.Map.InitialMode != "" && c.Map.InitialMode != "region" && c.Map.InitialMode != "state" {
		return fmt.Errorf("config: initial_mode %q must be region or state", c.Map.InitialMode)
	}

	regions := make(map[string]bool, len(c.Regions))
	for i, r := range c.Regions {
		if r.Name == "" {
			return fmt.Errorf("config: region %d has no name", i)
		}
		for _, s := range r.States {
			if s == "" {
				return fmt.Errorf("config: region %q lists an empty state", r.Name)
			}
		}
		regions[r.Name] = true
	}

	owner := make(map[string]string)
	for i, z := range c.Zones {
		if z.Key == "" {
			return fmt.Errorf("config: zone %d has no key", i)
		}
		if len(z.Regions) == 0 {
			return fmt.Errorf("config: zone %q has no regions", z.Key)
		}
		for _, r := range z.Regions {
			if !regions[r] {
				return fmt.Errorf("config: zone %q references unknown region %q", z.Key, r)
			}
			if prev, ok := owner[r]; ok && prev != z.Key {
				return fmt.Errorf("config: region %q belongs to zones %q and %q", r, prev, z.Key)
			}
			owner[r] = z.Key
		}
	}
	for name := range regions {
		if _, ok := owner[name]; !ok {
			return fmt.Errorf("config: region %q belongs to no zone", name)
		}
	}
	return nil
}

// Hierarchy converts the configured tree into geo index inputs.
func (c *Config) Hierarchy() ([]geo.RegionStates, []geo.ZoneRegions) {
	rs := make([]geo.RegionStates, 0, len(c.Regions))
	for _, r := range c.Regions {
		states := make([]model.State, len(r.States))
		for i, s := range r.States {
			states[i] = model.State(s)
		}
		rs = append(rs, geo.RegionStates{Region: model.Region(r.Name), States: states})
	}
	zr := make([]geo.ZoneRegions, 0, len(c.Zones))
	for _, z := range c.Zones {
		regions := make([]model.Region, len(z.Regions))
		for i, r := range z.Regions {
			regions[i] = model.Region(r)
		}
		zr = append(zr, geo.ZoneRegions{Zone: model.Zone(z.Key), Name: z.Name, Regions: regions})
	}
	return rs, zr
}

// Index builds the geo index for the configured hierarchy.
func (c *Config) Index() *geo.Index {
	return geo.New(c.Hierarchy())
}

// LabelOffsets returns the manual label nudges keyed by state.
func (c *Config) LabelOffsets() map[model.State]model.Offset {
	out := make(map[model.State]model.Offset, len(c.Labels.Offsets))
	for k, v := range c.Labels.Offsets {
		out[model.State(k)] = v
	}
	return out
}

// RegionColors returns the configured accent color per region.
func (c *Config) RegionColors() map[model.Region]string {
	out := make(map[model.Region]string, len(c.Regions))
	for _, r := range c.Regions {
		if r.Color != "" {
			out[model.Region(r.Name)] = r.Color
		}
	}
	return out
}

// EmphasisFor returns the configured brightness boosts for the theme.
func (c *Config) EmphasisFor(dark bool) choropleth.Emphasis {
	l := c.Emphasis.Light
	if dark {
		l = c.Emphasis.Dark
	}
	return choropleth.Emphasis{
		SelectedRegion: l.SelectedRegion,
		HoveredRegion:  l.HoveredRegion,
		HoveredState:   l.HoveredState,
	}
}
