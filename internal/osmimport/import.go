// Package osmimport draws OpenStreetMap data onto a new .mp map.
package osmimport

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/osm"
	"go.uber.org/zap"

	"github.com/badpandabear/MapCopy/civ2"
)

var DefaultPlaces = []string{"city", "town"}

type Options struct {
	Width, Height int
	Flat          bool
	Bound         orb.Bound        // lon/lat
	Base          civ2.TerrainType // untagged land
	Places        []string         // place=* values that become start positions
	Rules         *civ2.Rules
	Log           *zap.Logger
}

type feature struct {
	terrain civ2.TerrainType
	points  []orb.Point
	closed  bool
	order   int
}

type importer struct {
	o      Options
	proj   projection
	m      *civ2.Map
	nodes  map[osm.NodeID]*osm.Node
	areas  []feature
	rivers [][]orb.Point
	starts [][2]int
	log    *zap.Logger
}

// Import reads every object of s and returns a new map file holding them:
// tagged areas and lines become terrain, rivers set the river flag, places
// become civilization start positions and land fertility is calculated.
func Import(s osm.Scanner, o Options) (*civ2.SavedGame, error) {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Places == nil {
		o.Places = DefaultPlaces
	}
	if o.Bound.Max[0] <= o.Bound.Min[0] || o.Bound.Max[1] <= o.Bound.Min[1] {
		return nil, fmt.Errorf("%w: empty bound %v", civ2.ErrInvalidArgument, o.Bound)
	}
	g := civ2.New(civ2.WithLogger(o.Log), civ2.WithRules(o.Rules))
	if err := g.CreateMP(o.Width, o.Height, o.Flat); err != nil {
		return nil, err
	}
	m, err := g.Map(0)
	if err != nil {
		return nil, err
	}
	im := &importer{
		o:     o,
		proj:  projection{b: o.Bound, width: o.Width, height: o.Height},
		m:     m,
		nodes: make(map[osm.NodeID]*osm.Node),
		log:   o.Log,
	}

	for s.Scan() {
		switch obj := s.Object().(type) {
		case *osm.Node:
			im.node(obj)
		case *osm.Way:
			im.way(obj)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading osm data: %v", civ2.ErrIO, err)
	}

	if err := im.paint(); err != nil {
		return nil, err
	}
	if err := im.placeStarts(g); err != nil {
		return nil, err
	}
	if err := im.fertility(); err != nil {
		return nil, err
	}
	im.log.Info("imported osm data",
		zap.Int("nodes", len(im.nodes)),
		zap.Int("features", len(im.areas)),
		zap.Int("rivers", len(im.rivers)),
		zap.Int("starts", len(im.starts)))
	return g, nil
}

func (im *importer) node(n *osm.Node) {
	im.nodes[n.ID] = n
	pt := orb.Point{n.Lon, n.Lat}
	if !im.proj.contains(pt) {
		return
	}
	if t, ok := Classify(n.Tags); ok {
		im.areas = append(im.areas, feature{terrain: t, points: []orb.Point{pt}, order: len(im.areas)})
	}
	for _, t := range n.Tags {
		if t.Key == "place" && slices.Contains(im.o.Places, t.Value) && len(im.starts) < civ2.NumStartPositions {
			x, y := im.proj.xy(pt)
			if !slices.Contains(im.starts, [2]int{x, y}) {
				im.starts = append(im.starts, [2]int{x, y})
				im.log.Debug("added start position", zap.String("name", n.Tags.Find("name")), zap.Int("x", x), zap.Int("y", y))
			}
		}
	}
}

func (im *importer) way(w *osm.Way) {
	if !w.Visible || len(w.Nodes) == 0 {
		return
	}
	t, isArea := Classify(w.Tags)
	river := isRiver(w.Tags)
	if !isArea && !river {
		return
	}
	points := make([]orb.Point, 0, len(w.Nodes))
	for _, wn := range w.Nodes {
		n, ok := im.nodes[wn.ID]
		if !ok {
			continue
		}
		points = append(points, orb.Point{n.Lon, n.Lat})
	}
	if len(points) == 0 {
		return
	}
	if river {
		im.rivers = append(im.rivers, points)
	}
	if isArea {
		closed := len(w.Nodes) > 3 && w.Nodes[0].ID == w.Nodes[len(w.Nodes)-1].ID
		im.areas = append(im.areas, feature{terrain: t, points: points, closed: closed, order: len(im.areas)})
	}
}

// walk calls fn for each tile under the segments of points that lie in the
// box, like a road drawn between consecutive way nodes.
func (im *importer) walk(points []orb.Point, fn func(x, y int)) {
	prevValid := false
	var prevX, prevY float64
	for _, pt := range points {
		if !im.proj.contains(pt) {
			prevValid = false
			continue
		}
		curX, curY := im.proj.grid(pt)
		if prevValid {
			im.proj.line(prevX, prevY, curX, curY, fn)
		} else {
			fn(im.proj.tile(curX, curY))
		}
		prevValid = true
		prevX, prevY = curX, curY
	}
}

func (im *importer) paint() error {
	err := im.m.Each(func(x, y int) error {
		return im.m.SetTerrainType(x, y, im.o.Base)
	})
	if err != nil {
		return err
	}

	slices.SortStableFunc(im.areas, func(a, b feature) int {
		if c := cmp.Compare(paintOrder[a.terrain], paintOrder[b.terrain]); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
	for _, f := range im.areas {
		var firstErr error
		set := func(x, y int) {
			if err := im.m.SetTerrainType(x, y, f.terrain); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if f.closed {
			ring := orb.Ring(f.points)
			b := ring.Bound()
			err := im.m.Each(func(x, y int) error {
				pt := im.proj.point(x, y)
				if b.Contains(pt) && planar.RingContains(ring, pt) {
					set(x, y)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		im.walk(f.points, set)
		if firstErr != nil {
			return firstErr
		}
	}

	for _, r := range im.rivers {
		var firstErr error
		im.walk(r, func(x, y int) {
			t, err := im.m.TerrainType(x, y)
			if err == nil && t != civ2.Ocean {
				err = im.m.SetRiver(x, y, true)
			}
			if err != nil && firstErr == nil {
				firstErr = err
			}
		})
		if firstErr != nil {
			return firstErr
		}
	}
	return nil
}

func (im *importer) placeStarts(g *civ2.SavedGame) error {
	p, err := g.StartPositions()
	if err != nil {
		return err
	}
	for i, s := range im.starts {
		p.X[i], p.Y[i] = int16(s[0]), int16(s[1])
	}
	return g.SetStartPositions(p)
}

func (im *importer) fertility() error {
	return im.m.Each(func(x, y int) error {
		t, err := im.m.TerrainType(x, y)
		if err != nil {
			return err
		}
		if t == civ2.Ocean {
			return im.m.SetFertility(x, y, 0)
		}
		return im.m.CalcFertility(x, y)
	})
}
