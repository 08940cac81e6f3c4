package civ2

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// TerrainInfo holds the production of one terrain type.
type TerrainInfo struct {
	Food     int
	Shields  int
	Trade    int
	Irrigate bool
	Mine     bool
}

type TerrainRules struct {
	info [NumTerrainTypes]TerrainInfo
}

var defaultTerrain = [NumTerrainTypes]TerrainInfo{
	Desert:    {Food: 0, Shields: 1, Trade: 0, Irrigate: true, Mine: true},
	Plains:    {Food: 1, Shields: 1, Trade: 0, Irrigate: true},
	Grassland: {Food: 2, Shields: 1, Trade: 0, Irrigate: true},
	Forest:    {Food: 1, Shields: 2, Trade: 0},
	Hills:     {Food: 1, Shields: 0, Trade: 0, Irrigate: true, Mine: true},
	Mountains: {Food: 0, Shields: 1, Trade: 0, Mine: true},
	Tundra:    {Food: 1, Shields: 0, Trade: 0, Irrigate: true},
	Glacier:   {Food: 0, Shields: 0, Trade: 0, Mine: true},
	Swamp:     {Food: 1, Shields: 0, Trade: 0},
	Jungle:    {Food: 1, Shields: 0, Trade: 0},
	Ocean:     {Food: 1, Shields: 0, Trade: 2},
}

func DefaultTerrainRules() TerrainRules {
	return TerrainRules{info: defaultTerrain}
}

func (r *TerrainRules) Lookup(t TerrainType) (TerrainInfo, error) {
	if t >= NumTerrainTypes {
		return TerrainInfo{}, invalidArgument("no terrain rules for type %d", t)
	}
	return r.info[t], nil
}

func (r *TerrainRules) Set(t TerrainType, info TerrainInfo) error {
	if t >= NumTerrainTypes {
		return invalidArgument("no terrain rules for type %d", t)
	}
	r.info[t] = info
	return nil
}

// Rules keeps one terrain table per map position.
type Rules struct {
	maps [MaxMaps]TerrainRules
}

func DefaultRules() *Rules {
	r := &Rules{}
	for i := range r.maps {
		r.maps[i] = DefaultTerrainRules()
	}
	return r
}

func (r *Rules) Terrain(position int) (*TerrainRules, error) {
	if position < 0 || position >= MaxMaps {
		return nil, invalidArgument("no terrain rules for map %d", position)
	}
	return &r.maps[position], nil
}

type terrainOverride struct {
	Food     *int  `yaml:"food"`
	Shields  *int  `yaml:"shields"`
	Trade    *int  `yaml:"trade"`
	Irrigate *bool `yaml:"irrigate"`
	Mine     *bool `yaml:"mine"`
}

type rulesFile struct {
	Maps []struct {
		Map     int                        `yaml:"map"`
		Terrain map[string]terrainOverride `yaml:"terrain"`
	} `yaml:"maps"`
}

// LoadRules reads terrain overrides on top of the built-in tables:
//
//	maps:
//	  - map: 0
//	    terrain:
//	      grassland: {food: 3, irrigate: false}
func LoadRules(r io.Reader) (*Rules, error) {
	var f rulesFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, invalidArgument("rules: %v", err)
	}
	rules := DefaultRules()
	for _, m := range f.Maps {
		tr, err := rules.Terrain(m.Map)
		if err != nil {
			return nil, err
		}
		for name, o := range m.Terrain {
			t, err := ParseTerrainType(name)
			if err != nil {
				return nil, err
			}
			info := tr.info[t]
			if o.Food != nil {
				info.Food = *o.Food
			}
			if o.Shields != nil {
				info.Shields = *o.Shields
			}
			if o.Trade != nil {
				info.Trade = *o.Trade
			}
			if o.Irrigate != nil {
				info.Irrigate = *o.Irrigate
			}
			if o.Mine != nil {
				info.Mine = *o.Mine
			}
			tr.info[t] = info
		}
	}
	return rules, nil
}
