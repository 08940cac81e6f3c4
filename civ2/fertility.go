package civ2

// Ring weights of the fertility score: the tile itself, ring 1, ring 2.
var fertilityWeights = [CityRadius + 1]int{4, 2, 1}

const (
	minFertility = 8
	maxFertility = 15

	// Yields are summed in sixths so that the irrigation bonus (2/3 food)
	// and the mining bonus (1/2 shield) stay exact.
	irrigationBonus6 = 4
	miningBonus6     = 3
)

// ComputeFertility returns the fertility of (x,y) derived from the terrain of
// its city radius, without the reduction for nearby cities.
func (m *Map) ComputeFertility(x, y int) (uint8, error) {
	tr, err := m.rules.Terrain(m.position)
	if err != nil {
		return 0, err
	}
	it, err := m.Ring(x, y, CityRadius)
	if err != nil {
		return 0, err
	}
	sum6 := 0
	for it.Next() {
		tt, err := m.TerrainType(it.X(), it.Y())
		if err != nil {
			return 0, err
		}
		info, err := tr.Lookup(tt)
		if err != nil {
			return 0, err
		}
		food6, shields6, trade6 := 6*info.Food, 6*info.Shields, 6*info.Trade
		if tt == Grassland {
			shields6 = 0
			if has, _ := m.HasGrasslandShield(it.X(), it.Y()); has {
				shields6 = 6
			}
		}
		if info.Mine {
			shields6 += miningBonus6
		} else if info.Irrigate {
			food6 += irrigationBonus6
		}
		sum6 += fertilityWeights[it.Distance()] * (3*food6 + 2*shields6 + trade6)
	}
	if err := it.Err(); err != nil {
		return 0, err
	}

	// round(sum6 / 6 / 16), halves up
	f := (sum6 + 48) / 96

	if tt, _ := m.TerrainType(x, y); tt == Grassland {
		if has, _ := m.HasGrasslandShield(x, y); !has {
			f--
		}
	}
	return uint8(min(max(f, minFertility), maxFertility)), nil
}

// CalcFertility stores the computed fertility of (x,y), keeping its
// ownership. The caller skips ocean tiles.
func (m *Map) CalcFertility(x, y int) error {
	f, err := m.ComputeFertility(x, y)
	if err != nil {
		return err
	}
	return m.SetFertility(x, y, f)
}

// AdjustFertility lowers the fertility of (x,y) by 8 when a city stands
// within AdjustmentRadius. Values of 7 and below were already lowered.
func (m *Map) AdjustFertility(x, y int) error {
	it, err := m.Ring(x, y, AdjustmentRadius)
	if err != nil {
		return err
	}
	city := false
	for !city && it.Next() {
		imp, err := m.Improvements(it.X(), it.Y())
		if err != nil {
			return err
		}
		city = imp.City()
	}
	if err := it.Err(); err != nil {
		return err
	}
	if !city {
		return nil
	}
	f, err := m.Fertility(x, y)
	if err != nil {
		return err
	}
	if f > 7 {
		return m.SetFertility(x, y, f-8)
	}
	return nil
}

type FertilityDiff struct {
	X, Y int
	A, B uint8
}

// DiffFertility lists the tiles whose fertility differs between a and b.
func DiffFertility(a, b *Map) ([]FertilityDiff, error) {
	if a.width != b.width || a.height != b.height {
		return nil, invalidArgument("cannot compare %dx%d map with %dx%d map", a.width, a.height, b.width, b.height)
	}
	var diffs []FertilityDiff
	err := a.Each(func(x, y int) error {
		fa, err := a.Fertility(x, y)
		if err != nil {
			return err
		}
		fb, err := b.Fertility(x, y)
		if err != nil {
			return err
		}
		if fa != fb {
			diffs = append(diffs, FertilityDiff{X: x, Y: y, A: fa, B: fb})
		}
		return nil
	})
	return diffs, err
}
