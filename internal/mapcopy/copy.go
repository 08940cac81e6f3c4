package mapcopy

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/badpandabear/MapCopy/civ2"
)

var (
	ErrSizeMismatch = errors.New("both maps must be the same size")
	ErrMapSelection = errors.New("invalid map selection")
)

const cityRadiusOwnerBits = 0xE0

// CopyMap copies what o selects from src onto dst. src and dst may be the
// same map. Fertility that depends on neighbours is worked out in a second
// pass once every tile holds its final terrain.
func CopyMap(src, dst *civ2.Map, o Options) error {
	if src.Width() != dst.Width() || src.Height() != dst.Height() {
		return fmt.Errorf("%w: %dx%d and %dx%d", ErrSizeMismatch, src.Width(), src.Height(), dst.Width(), dst.Height())
	}
	if o.Seed == Copy {
		dst.SetSeed(src.Seed())
	}

	err := dst.Each(func(x, y int) error {
		s, err := src.Tile(x, y)
		if err != nil {
			return err
		}
		d, err := dst.Tile(x, y)
		if err != nil {
			return err
		}
		if o.Terrain == Copy {
			d.SetRiver(s.River())
			d.SetType(s.Type())
		}
		if o.Improvements == Copy {
			d.Improvements = s.Improvements
		}
		if o.Visibility == Copy {
			d.Visibility = s.Visibility
		}
		if o.Ownership == Copy {
			d.SetOwnership(s.Ownership())
		}
		if o.BodyCounter == Copy {
			d.BodyCounter = s.BodyCounter
		}
		if o.CityRadius == Copy {
			d.CityRadius = s.CityRadius & cityRadiusOwnerBits
		}
		switch o.Fertility {
		case Copy:
			d.SetFertility(s.Fertility())
		case Zero:
			d.SetFertility(0)
		}
		switch o.ResourceHidden {
		case Copy:
			d.SetResourceHidden(s.ResourceHidden())
		case Set:
			d.SetResourceHidden(true)
		case Clear:
			d.SetResourceHidden(false)
		}
		if err := dst.SetTile(x, y, d); err != nil {
			return err
		}

		switch o.CivView {
		case Current:
			return dst.SetCivView(x, y, civ2.AllCivs, d.Improvements)
		case Copy:
			for c := civ2.White; c <= civ2.Purple; c++ {
				v, err := src.CivView(x, y, c)
				if err != nil {
					return err
				}
				if err := dst.SetCivView(x, y, c, v); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	switch o.Fertility {
	case Calc, CalcAll, Adjust:
		return dst.Each(func(x, y int) error {
			return refertilize(src, dst, x, y, o.Fertility)
		})
	}
	return nil
}

func refertilize(src, dst *civ2.Map, x, y int, mode Mode) error {
	t, err := dst.TerrainType(x, y)
	if err != nil {
		return err
	}
	var recompute bool
	switch mode {
	case Calc:
		recompute = t == civ2.Grassland || t == civ2.Plains
	default:
		recompute = t != civ2.Ocean
	}
	if !recompute {
		return dst.SetFertility(x, y, 0)
	}

	if mode == Adjust {
		var f uint8
		if f, err = src.Fertility(x, y); err != nil {
			return err
		}
		err = dst.SetFertility(x, y, f)
	} else {
		err = dst.CalcFertility(x, y)
	}
	if err != nil {
		return err
	}
	return dst.AdjustFertility(x, y)
}

// CopyGame copies the maps of src chosen by a.SourceMap and a.DestMap into dst,
// adding maps to dst where needed. src and dst may be the same game.
func CopyGame(src, dst *civ2.SavedGame, a *Args, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if src.Width() != dst.Width() || src.Height() != dst.Height() {
		return fmt.Errorf("%w: %dx%d and %dx%d", ErrSizeMismatch, src.Width(), src.Height(), dst.Width(), dst.Height())
	}
	o := a.Options
	sm, dm := selectMaps(a.SourceMap, a.DestMap, src.SupportsMultiMaps(), dst.SupportsMultiMaps())

	switch {
	case sm == AllMaps && dm == AllMaps && src.NumMaps() > dst.NumMaps() && !dst.SupportsMultiMaps():
		return fmt.Errorf("%w: cannot create multiple maps in a %v file", ErrMapSelection, dst.Version())
	case dm > 1 && !dst.SupportsMultiMaps():
		return fmt.Errorf("%w: cannot create multiple maps in a %v file", ErrMapSelection, dst.Version())
	case sm > src.NumMaps():
		return fmt.Errorf("%w: source has no map %d", ErrMapSelection, sm)
	case dm > dst.NumMaps()+1:
		return fmt.Errorf("%w: map %d would leave a gap after map %d", ErrMapSelection, dm, dst.NumMaps())
	case sm == AllMaps && dm != AllMaps:
		return fmt.Errorf("%w: cannot copy all maps onto map %d", ErrMapSelection, dm)
	}

	if o.Seed == Copy {
		s, err := src.Seed()
		if err != nil {
			return err
		}
		if err := dst.SetSeed(s); err != nil {
			return err
		}
	}
	if o.CivStart == Copy {
		p, err := src.StartPositions()
		if err != nil {
			return err
		}
		if err := dst.SetStartPositions(p); err != nil {
			return err
		}
	}

	copyOne := func(from, to int) error {
		s, err := src.Map(from - 1)
		if err != nil {
			return err
		}
		d, err := dst.Map(to - 1)
		if err != nil {
			return err
		}
		log.Info("copying map", zap.Int("from", from), zap.Int("to", to))
		if err := CopyMap(s, d, o); err != nil {
			return fmt.Errorf("map %d to %d: %w", from, to, err)
		}
		return nil
	}
	addMap := func(n int) error {
		log.Info("adding map", zap.Int("map", n))
		return dst.AddMap(n - 1)
	}

	switch {
	case sm != AllMaps:
		targets := []int{dm}
		if dm == AllMaps {
			targets = targets[:0]
			for i := 1; i <= dst.NumMaps(); i++ {
				targets = append(targets, i)
			}
		} else if dm > dst.NumMaps() {
			if err := addMap(dm); err != nil {
				return err
			}
		}
		for _, to := range targets {
			if err := copyOne(sm, to); err != nil {
				return err
			}
		}
	default:
		for i := 1; i <= src.NumMaps(); i++ {
			if i > dst.NumMaps() {
				if err := addMap(i); err != nil {
					return err
				}
			}
			if err := copyOne(i, i); err != nil {
				return err
			}
		}
	}

	// Files with a single map have no seed of their own per map.
	if !dst.SupportsMultiMaps() && o.Seed == Copy {
		m, err := dst.Map(0)
		if err != nil {
			return err
		}
		return dst.SetSeed(m.Seed())
	}
	return nil
}
