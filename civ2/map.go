package civ2

import (
	"go.uber.org/zap"
)

// Map is one terrain map of a saved game. Maps are created and owned by a
// SavedGame.
type Map struct {
	width, height int
	area          int
	flat          bool
	position      int
	seed          uint16
	tiles         []Tile
	views         []Improvements // nil for .mp files
	grassShields  []bool         // built on first use
	rules         *Rules
	log           *zap.Logger
}

func newMap(h FileHeader, position int, withViews bool, rules *Rules, log *zap.Logger) *Map {
	m := &Map{
		width:    int(h.Width),
		height:   int(h.Height),
		area:     int(h.Area),
		flat:     h.FlatEarth != 0,
		position: position,
		seed:     h.Seed,
		tiles:    make([]Tile, int(h.Area)),
		rules:    rules,
		log:      log.With(zap.Int("map", position)),
	}
	for i := range m.tiles {
		m.tiles[i] = blankTile()
	}
	if withViews {
		m.views = make([]Improvements, int(h.Area)*civViewSlots)
	}
	m.retag()
	return m
}

func (m *Map) Width() int       { return m.width }
func (m *Map) Height() int      { return m.height }
func (m *Map) Area() int        { return m.area }
func (m *Map) IsFlat() bool     { return m.flat }
func (m *Map) Position() int    { return m.position }
func (m *Map) Seed() uint16     { return m.seed }
func (m *Map) HasCivView() bool { return m.views != nil }

func (m *Map) SetSeed(s uint16) { m.seed = s }

func (m *Map) offset(x, y int) (int, error) {
	if (x+y)%2 != 0 {
		return 0, invalidArgument("(%d,%d): x+y must be even", x, y)
	}
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0, invalidArgument("(%d,%d): outside %dx%d map", x, y, m.width, m.height)
	}
	o := x/2 + y*(m.width/2)
	if o >= m.area {
		return 0, invalidArgument("(%d,%d): offset %d out of bounds", x, y, o)
	}
	return o, nil
}

func (m *Map) tile(x, y int) (*Tile, error) {
	o, err := m.offset(x, y)
	if err != nil {
		return nil, err
	}
	return &m.tiles[o], nil
}

func (m *Map) viewOffset(x, y int, c Civilization) (int, error) {
	if m.views == nil {
		return 0, unsupported("map files have no civ view")
	}
	if c == Red || c > Purple {
		return 0, invalidArgument("no civ view for %v", c)
	}
	o, err := m.offset(x, y)
	if err != nil {
		return 0, err
	}
	return o + int(c-1)*m.area, nil
}

// Each calls fn for every valid coordinate, row by row.
func (m *Map) Each(fn func(x, y int) error) error {
	for y := 0; y < m.height; y++ {
		for x := y % 2; x < m.width; x += 2 {
			if err := fn(x, y); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Map) Tile(x, y int) (Tile, error) {
	t, err := m.tile(x, y)
	if err != nil {
		return Tile{}, err
	}
	return *t, nil
}

// SetTile stores a whole record. The body counter is tagged with this map's
// position like SetBodyCounter does.
func (m *Map) SetTile(x, y int, v Tile) error {
	t, err := m.tile(x, y)
	if err != nil {
		return err
	}
	v.BodyCounter = m.tag(v.BodyCounter)
	*t = v
	return nil
}

func (m *Map) TerrainType(x, y int) (TerrainType, error) {
	t, err := m.tile(x, y)
	if err != nil {
		return 0, err
	}
	return t.Type(), nil
}

func (m *Map) SetTerrainType(x, y int, tt TerrainType) error {
	t, err := m.tile(x, y)
	if err != nil {
		return err
	}
	t.SetType(tt)
	return nil
}

func (m *Map) River(x, y int) (bool, error) {
	t, err := m.tile(x, y)
	if err != nil {
		return false, err
	}
	return t.River(), nil
}

func (m *Map) SetRiver(x, y int, b bool) error {
	t, err := m.tile(x, y)
	if err != nil {
		return err
	}
	t.SetRiver(b)
	return nil
}

func (m *Map) ResourceHidden(x, y int) (bool, error) {
	t, err := m.tile(x, y)
	if err != nil {
		return false, err
	}
	return t.ResourceHidden(), nil
}

func (m *Map) SetResourceHidden(x, y int, b bool) error {
	t, err := m.tile(x, y)
	if err != nil {
		return err
	}
	t.SetResourceHidden(b)
	return nil
}

func (m *Map) Improvements(x, y int) (Improvements, error) {
	t, err := m.tile(x, y)
	if err != nil {
		return 0, err
	}
	return t.Improvements, nil
}

func (m *Map) SetImprovements(x, y int, i Improvements) error {
	t, err := m.tile(x, y)
	if err != nil {
		return err
	}
	t.Improvements = i
	return nil
}

func (m *Map) Visibility(x, y int) (WhichCivs, error) {
	t, err := m.tile(x, y)
	if err != nil {
		return 0, err
	}
	return t.Visibility, nil
}

func (m *Map) SetVisibility(x, y int, v WhichCivs) error {
	t, err := m.tile(x, y)
	if err != nil {
		return err
	}
	t.Visibility = v
	return nil
}

func (m *Map) BodyCounter(x, y int) (uint8, error) {
	t, err := m.tile(x, y)
	if err != nil {
		return 0, err
	}
	return t.BodyCounter, nil
}

// SetBodyCounter stores the continent id in the low 6 bits; the top 2 bits
// always hold this map's position.
func (m *Map) SetBodyCounter(x, y int, bc uint8) error {
	t, err := m.tile(x, y)
	if err != nil {
		return err
	}
	t.BodyCounter = m.tag(bc)
	return nil
}

func (m *Map) tag(bc uint8) uint8 {
	return bc&0x3F | uint8(m.position)<<6
}

// retag moves every stored body counter to the current position.
func (m *Map) retag() {
	for i := range m.tiles {
		m.tiles[i].BodyCounter = m.tag(m.tiles[i].BodyCounter)
	}
}

func (m *Map) CityRadius(x, y int) (Civilization, error) {
	t, err := m.tile(x, y)
	if err != nil {
		return 0, err
	}
	return t.CityRadiusOwner(), nil
}

func (m *Map) SetCityRadius(x, y int, c Civilization) error {
	if c > Purple {
		return invalidArgument("city radius owner %v", c)
	}
	t, err := m.tile(x, y)
	if err != nil {
		return err
	}
	t.CityRadius = uint8(c) << 5
	return nil
}

func (m *Map) Fertility(x, y int) (uint8, error) {
	t, err := m.tile(x, y)
	if err != nil {
		return 0, err
	}
	return t.Fertility(), nil
}

func (m *Map) SetFertility(x, y int, f uint8) error {
	if f > 15 {
		return invalidArgument("fertility %d", f)
	}
	t, err := m.tile(x, y)
	if err != nil {
		return err
	}
	t.SetFertility(f)
	return nil
}

func (m *Map) Ownership(x, y int) (Civilization, error) {
	t, err := m.tile(x, y)
	if err != nil {
		return 0, err
	}
	return t.Ownership(), nil
}

// SetOwnership accepts the whole nibble; blank tiles carry 15.
func (m *Map) SetOwnership(x, y int, c Civilization) error {
	if c > 15 {
		return invalidArgument("ownership %d", c)
	}
	t, err := m.tile(x, y)
	if err != nil {
		return err
	}
	t.SetOwnership(c)
	return nil
}

// CivView returns the improvements civ c saw at its last visit to (x,y).
func (m *Map) CivView(x, y int, c Civilization) (Improvements, error) {
	o, err := m.viewOffset(x, y, c)
	if err != nil {
		return 0, err
	}
	return m.views[o], nil
}

// SetCivView sets the view of one civ, or of all seven with AllCivs.
func (m *Map) SetCivView(x, y int, c Civilization, i Improvements) error {
	if c != AllCivs {
		o, err := m.viewOffset(x, y, c)
		if err != nil {
			return err
		}
		m.views[o] = i
		return nil
	}
	for civ := White; civ <= Purple; civ++ {
		if err := m.SetCivView(x, y, civ, i); err != nil {
			return err
		}
	}
	return nil
}

// HasGrasslandShield is false for anything but grassland.
func (m *Map) HasGrasslandShield(x, y int) (bool, error) {
	t, err := m.tile(x, y)
	if err != nil {
		return false, err
	}
	if t.Type() != Grassland {
		return false, nil
	}
	if m.grassShields == nil {
		m.initResourceMap()
	}
	o, _ := m.offset(x, y)
	return m.grassShields[o], nil
}

// initResourceMap lays out the diagonal stripes of grassland shields. Each row
// starts from a seed that grows by 3 every second row.
func (m *Map) initResourceMap() {
	m.grassShields = make([]bool, m.area)
	evenSeed, oddSeed := 0, 2
	for y := 0; y < m.height; y++ {
		var h int
		if y%2 == 0 {
			h = evenSeed
			evenSeed += 3
		} else {
			h = oddSeed
			oddSeed += 3
		}
		for x := y % 2; x < m.width; x += 2 {
			if o, err := m.offset(x, y); err == nil {
				m.grassShields[o] = (h/2)%2 == 0
			}
			h++
		}
	}
}
