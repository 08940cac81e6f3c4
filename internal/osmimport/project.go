package osmimport

import (
	"math"

	"github.com/paulmach/orb"
)

// BoundAround is the lon/lat box of the given size in degrees centred on
// lat, lon.
func BoundAround(lat, lon, size float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{lon - size/2, lat - size/2},
		Max: orb.Point{lon + size/2, lat + size/2},
	}
}

// projection maps the box linearly onto a width x height map, north up.
type projection struct {
	b             orb.Bound
	width, height int
}

func (p projection) contains(pt orb.Point) bool {
	return p.b.Min[0] < pt[0] && pt[0] < p.b.Max[0] && p.b.Min[1] < pt[1] && pt[1] < p.b.Max[1]
}

// grid returns the position of pt in tile units, before snapping.
func (p projection) grid(pt orb.Point) (float64, float64) {
	gx := (pt[0] - p.b.Min[0]) / (p.b.Max[0] - p.b.Min[0]) * float64(p.width)
	gy := (p.b.Max[1] - pt[1]) / (p.b.Max[1] - p.b.Min[1]) * float64(p.height)
	return gx, gy
}

// tile snaps a grid position to a valid map coordinate (x+y even).
func (p projection) tile(gx, gy float64) (int, int) {
	x := min(max(int(math.Floor(gx)), 0), p.width-1)
	y := min(max(int(math.Floor(gy)), 0), p.height-1)
	if (x+y)%2 != 0 {
		if x == p.width-1 || (x > 0 && gx-float64(x) < 0.5) {
			x--
		} else {
			x++
		}
	}
	return x, y
}

func (p projection) xy(pt orb.Point) (int, int) {
	return p.tile(p.grid(pt))
}

// point is the centre of tile (x,y) as lon/lat.
func (p projection) point(x, y int) orb.Point {
	lon := p.b.Min[0] + (float64(x)+0.5)/float64(p.width)*(p.b.Max[0]-p.b.Min[0])
	lat := p.b.Max[1] - (float64(y)+0.5)/float64(p.height)*(p.b.Max[1]-p.b.Min[1])
	return orb.Point{lon, lat}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// line calls fn for the tiles between two grid positions, stepping along
// the longer axis.
func (p projection) line(x1, y1, x2, y2 float64, fn func(x, y int)) {
	ix1, iy1 := int(math.Floor(x1)), int(math.Floor(y1))
	ix2, iy2 := int(math.Floor(x2)), int(math.Floor(y2))
	d := 0
	xm, ym := 1.0, 1.0
	if ix1 != ix2 || iy1 != iy2 {
		if abs(ix2-ix1) >= abs(iy2-iy1) {
			d = abs(ix2 - ix1)
			if ix1 > ix2 {
				xm = -1.0
			}
			ym = (y2 - y1) / float64(abs(ix2-ix1))
		} else {
			d = abs(iy2 - iy1)
			if iy1 > iy2 {
				ym = -1.0
			}
			xm = (x2 - x1) / float64(abs(iy2-iy1))
		}
	}
	lastX, lastY := -1, -1
	for i := 0; i <= d; i++ {
		x, y := p.tile(x1+float64(i)*xm, y1+float64(i)*ym)
		if x != lastX || y != lastY {
			fn(x, y)
		}
		lastX, lastY = x, y
	}
}
