package civ2

// Ring distances used by the fertility calculation.
const (
	CityRadius       = 2 // 21 tiles when fully on the map
	AdjustmentRadius = 3
)

// Unit steps on the diagonal grid: right, down, left, up.
var (
	ringDeltaX = [4]int{1, 1, -1, -1}
	ringDeltaY = [4]int{-1, 1, 1, -1}
)

type ringState int

const (
	ringStart ringState = iota // center not yet returned
	ringWalk                   // moving along the current ring
	ringGap                    // inside the gap left by an inner ring corner
	ringDone
)

// RingIterator walks the tiles around a center in rings of growing distance.
// Each ring starts just right of its top and runs clockwise:
//
//	   19 20  9
//	18  7  8  1 10
//	17  6  0  2 11
//	16  5  4  3 12
//	   15 14 13
//
// The corners of ring 1 are included, those of the outer rings are not, which
// is how the game shapes a city radius. Tiles off the map are skipped; x wraps
// around unless the map is flat, y never does.
//
// Use it like a bufio.Scanner:
//
//	it, err := m.Ring(x, y, CityRadius)
//	for it.Next() {
//		... it.X(), it.Y(), it.Distance()
//	}
//	if err := it.Err(); err != nil {
type RingIterator struct {
	m           *Map
	cx, cy      int
	x, y        int
	endX, endY  int
	distance    int
	direction   int
	maxDistance int
	state       ringState
	steps       int // moves taken in the current ring
	found       int // on-map tiles in the current ring
	emptyRings  int
	err         error
}

// Ring returns an iterator over the tiles within maxDistance of (x,y). A
// negative maxDistance never stops on its own; Next then fails with
// ErrLogic once the rings leave the map.
func (m *Map) Ring(x, y, maxDistance int) (*RingIterator, error) {
	if _, err := m.offset(x, y); err != nil {
		return nil, err
	}
	return &RingIterator{
		m:           m,
		cx:          x,
		cy:          y,
		x:           x,
		y:           y,
		endX:        x,
		endY:        y,
		maxDistance: maxDistance,
	}, nil
}

func (r *RingIterator) X() int        { return r.x }
func (r *RingIterator) Y() int        { return r.y }
func (r *RingIterator) Distance() int { return r.distance }
func (r *RingIterator) Err() error    { return r.err }

// Next moves to the next on-map tile. It returns false when maxDistance has
// been covered or on error.
func (r *RingIterator) Next() bool {
	switch r.state {
	case ringDone:
		return false
	case ringStart:
		r.state = ringWalk
		return true
	}
	for {
		var offMap bool
		switch {
		case r.state == ringGap:
			offMap = r.leaveGap()
		case r.x == r.endX && r.y == r.endY:
			if !r.openRing() {
				return false
			}
			offMap = r.enterRing()
		default:
			offMap = r.advance()
		}
		r.steps++
		if r.steps > 8*r.distance+4 {
			r.fail("ring %d around (%d,%d) does not close", r.distance, r.cx, r.cy)
			return false
		}
		if !offMap {
			r.found++
			return true
		}
	}
}

func (r *RingIterator) fail(format string, args ...any) {
	r.err = logicError(format, args...)
	r.state = ringDone
}

// openRing checks the ring just finished and starts the next one.
func (r *RingIterator) openRing() bool {
	if r.maxDistance >= 0 && r.distance >= r.maxDistance {
		r.state = ringDone
		return false
	}
	if r.distance > 0 && r.found == 0 {
		r.emptyRings++
	} else {
		r.emptyRings = 0
	}
	if r.emptyRings >= 2 {
		r.fail("rings around (%d,%d) went completely off the map", r.cx, r.cy)
		return false
	}
	if r.maxDistance < 0 && r.distance >= max(r.m.width, r.m.height) {
		r.fail("ring %d around (%d,%d) is larger than the map", r.distance+1, r.cx, r.cy)
		return false
	}
	r.distance++
	r.steps = 0
	r.found = 0
	return true
}

// enterRing moves the ring end up one step and the current point to the tile
// right of it.
func (r *RingIterator) enterRing() bool {
	r.endX, r.endY, _ = r.move(r.endX, r.endY, 3)
	r.direction = 0
	var offMap bool
	r.x, r.y, offMap = r.move(r.endX, r.endY, r.direction)
	if r.distance == 1 {
		// ring 1 starts on its corner, next direction is down
		r.direction++
	}
	return offMap
}

func (r *RingIterator) advance() bool {
	offMap := r.step()
	if r.x != r.cx && r.y != r.cy {
		return offMap
	}
	r.turn()
	if r.distance == 1 {
		return offMap
	}
	offMap = r.step()
	if r.distance > 2 {
		r.turn()
		offMap = r.step()
		r.state = ringGap
	}
	return offMap
}

// leaveGap reverses out of the inner ring's corner and resumes the ring.
func (r *RingIterator) leaveGap() bool {
	r.direction = (r.direction + 2) % 4
	offMap := r.step()
	r.turn()
	r.state = ringWalk
	return offMap
}

func (r *RingIterator) turn() {
	r.direction = (r.direction + 1) % 4
}

func (r *RingIterator) step() bool {
	var offMap bool
	r.x, r.y, offMap = r.move(r.x, r.y, r.direction)
	return offMap
}

// move steps one tile in direction, wrapping x at the date line of a round
// map. It reports whether the result is off the map.
func (r *RingIterator) move(x, y, direction int) (int, int, bool) {
	x += ringDeltaX[direction]
	y += ringDeltaY[direction]
	width := r.m.width
	offMap := false
	if x < 0 || (y%2 == 1 && x < 1) {
		if r.m.flat {
			offMap = true
		} else {
			x = width - ((-x) % width)
		}
	}
	if x >= width || (y%2 == 0 && x == width-1) {
		if r.m.flat {
			offMap = true
		} else {
			x %= width
		}
	}
	if y < 0 || y >= r.m.height {
		offMap = true
	}
	return x, y, offMap
}
