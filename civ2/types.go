package civ2

import "fmt"

type Civilization uint8

const (
	Red    Civilization = iota // barbarians
	White                      // Romans, Russians, Celts
	Green                      // Babylonians, Zulus, Japanese
	Blue                       // Germans, French, Vikings
	Yellow                     // Egyptians, Aztecs, Spanish
	Cyan                       // Americans, Chinese, Persians
	Orange                     // Greeks, English, Carthaginians
	Purple                     // Indians, Mongols, Sioux
	AllCivs
)

var civNames = [...]string{"red", "white", "green", "blue", "yellow", "cyan", "orange", "purple", "all"}

func (c Civilization) String() string {
	if int(c) < len(civNames) {
		return civNames[c]
	}
	return fmt.Sprintf("civ(%d)", uint8(c))
}

type TerrainType uint8

const (
	Desert TerrainType = iota
	Plains
	Grassland
	Forest
	Hills
	Mountains
	Tundra
	Glacier
	Swamp
	Jungle
	Ocean
	NumTerrainTypes = 11
)

var terrainNames = [NumTerrainTypes]string{
	"desert", "plains", "grassland", "forest", "hills", "mountains",
	"tundra", "glacier", "swamp", "jungle", "ocean",
}

func (t TerrainType) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return fmt.Sprintf("terrain(%d)", uint8(t))
}

// ParseTerrainType accepts the lower case names returned by String.
func ParseTerrainType(s string) (TerrainType, error) {
	for i, n := range terrainNames {
		if n == s {
			return TerrainType(i), nil
		}
	}
	return 0, invalidArgument("unknown terrain type %q", s)
}

// FileHeader is the 14 byte map header shared by .mp files and saved games.
type FileHeader struct {
	Width         uint16
	Height        uint16
	Area          uint16 // Width*Height/2
	FlatEarth     uint16
	Seed          uint16
	LocatorWidth  uint16 // ceil(Width/4)
	LocatorHeight uint16 // ceil(Height/4)
}

const headerSize = 14

// StartPositions are the civilization start locations of a .mp file. Unset
// entries are -1,-1.
type StartPositions struct {
	X [NumStartPositions]int16
	Y [NumStartPositions]int16
}

const (
	NumStartPositions  = 21
	startPositionsSize = NumStartPositions * 2 * 2
)

// Tile is one packed 6 byte terrain record.
type Tile struct {
	Terrain       uint8 // low 6 bits type, 0x40 resource hidden, 0x80 river
	Improvements  Improvements
	CityRadius    uint8 // owning civ << 5
	BodyCounter   uint8 // top 2 bits map position, low 6 bits continent id
	Visibility    WhichCivs
	FertOwnership uint8 // high nibble ownership, low nibble fertility
}

const tileSize = 6

const (
	riverFlag       = 0x80
	noResourceFlag  = 0x40
	terrainTypeMask = 0x3F
)

func blankTile() Tile {
	return Tile{Terrain: uint8(Ocean), FertOwnership: 0xF0}
}

func (t Tile) Type() TerrainType    { return TerrainType(t.Terrain & terrainTypeMask) }
func (t Tile) River() bool          { return t.Terrain&riverFlag != 0 }
func (t Tile) ResourceHidden() bool { return t.Terrain&noResourceFlag != 0 }
func (t Tile) Fertility() uint8     { return t.FertOwnership & 0x0F }
func (t Tile) Ownership() Civilization {
	return Civilization(t.FertOwnership >> 4)
}
func (t Tile) CityRadiusOwner() Civilization {
	return Civilization(t.CityRadius >> 5)
}

func (t *Tile) SetType(tt TerrainType) {
	t.Terrain = t.Terrain&^terrainTypeMask | uint8(tt)&terrainTypeMask
}

func (t *Tile) SetRiver(b bool) {
	if b {
		t.Terrain |= riverFlag
	} else {
		t.Terrain &^= riverFlag
	}
}

func (t *Tile) SetResourceHidden(b bool) {
	if b {
		t.Terrain |= noResourceFlag
	} else {
		t.Terrain &^= noResourceFlag
	}
}

func (t *Tile) SetFertility(f uint8) {
	t.FertOwnership = t.FertOwnership&0xF0 | f&0x0F
}

func (t *Tile) SetOwnership(c Civilization) {
	t.FertOwnership = t.FertOwnership&0x0F | uint8(c)<<4
}

func (t Tile) bytes(b []byte) {
	b[0] = t.Terrain
	b[1] = uint8(t.Improvements)
	b[2] = t.CityRadius
	b[3] = t.BodyCounter
	b[4] = uint8(t.Visibility)
	b[5] = t.FertOwnership
}

func tileFromBytes(b []byte) Tile {
	return Tile{
		Terrain:       b[0],
		Improvements:  Improvements(b[1]),
		CityRadius:    b[2],
		BodyCounter:   b[3],
		Visibility:    WhichCivs(b[4]),
		FertOwnership: b[5],
	}
}
