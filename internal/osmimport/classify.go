package osmimport

import (
	"github.com/paulmach/osm"

	"github.com/badpandabear/MapCopy/civ2"
)

type tagRule struct {
	key, value string
	terrain    civ2.TerrainType
}

var tagRules = []tagRule{
	{"natural", "water", civ2.Ocean},
	{"natural", "coastline", civ2.Ocean},
	{"natural", "bay", civ2.Ocean},
	{"waterway", "riverbank", civ2.Ocean},
	{"landuse", "reservoir", civ2.Ocean},
	{"landuse", "basin", civ2.Ocean},
	{"natural", "wood", civ2.Forest},
	{"landuse", "forest", civ2.Forest},
	{"natural", "wetland", civ2.Swamp},
	{"landuse", "grass", civ2.Grassland},
	{"landuse", "meadow", civ2.Grassland},
	{"natural", "grassland", civ2.Grassland},
	{"landuse", "farmland", civ2.Plains},
	{"landuse", "farmyard", civ2.Plains},
	{"natural", "sand", civ2.Desert},
	{"natural", "beach", civ2.Desert},
	{"natural", "desert", civ2.Desert},
	{"natural", "glacier", civ2.Glacier},
	{"natural", "peak", civ2.Mountains},
	{"natural", "ridge", civ2.Mountains},
	{"natural", "volcano", civ2.Mountains},
	{"natural", "hill", civ2.Hills},
	{"natural", "heath", civ2.Tundra},
}

// Classify returns the terrain that tags describe, if any.
func Classify(tags osm.Tags) (civ2.TerrainType, bool) {
	for _, t := range tags {
		for _, r := range tagRules {
			if t.Key == r.key && t.Value == r.value {
				return r.terrain, true
			}
		}
	}
	return 0, false
}

// paintOrder ranks terrain so that later features cover earlier ones.
var paintOrder = map[civ2.TerrainType]int{
	civ2.Grassland: 0,
	civ2.Plains:    1,
	civ2.Desert:    2,
	civ2.Tundra:    3,
	civ2.Forest:    4,
	civ2.Jungle:    5,
	civ2.Swamp:     6,
	civ2.Hills:     7,
	civ2.Mountains: 8,
	civ2.Glacier:   9,
	civ2.Ocean:     10,
}

func isRiver(tags osm.Tags) bool {
	for _, t := range tags {
		if t.Key == "waterway" && t.Value == "river" {
			return true
		}
	}
	return false
}
