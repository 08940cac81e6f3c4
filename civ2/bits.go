package civ2

// Improvements is the improvements byte of a tile (and of each civ view
// entry). It stays a single byte so whole values can be copied between maps
// without splitting them up.
type Improvements uint8

const (
	unitMask       Improvements = 0x01
	cityMask       Improvements = 0x02
	irrigationMask Improvements = 0x04
	miningMask     Improvements = 0x08
	roadMask       Improvements = 0x10
	railroadMask   Improvements = 0x20
	fortressMask   Improvements = 0x40
	pollutionMask  Improvements = 0x80
)

func (i Improvements) has(mask Improvements) bool {
	return i&mask != 0
}

func (i *Improvements) set(mask Improvements, b bool) {
	if b {
		*i |= mask
	} else {
		*i &^= mask
	}
}

func (i Improvements) Unit() bool       { return i.has(unitMask) }
func (i Improvements) City() bool       { return i.has(cityMask) }
func (i Improvements) Irrigation() bool { return i.has(irrigationMask) }
func (i Improvements) Mining() bool     { return i.has(miningMask) }
func (i Improvements) Road() bool       { return i.has(roadMask) }
func (i Improvements) Railroad() bool   { return i.has(railroadMask) }
func (i Improvements) Fortress() bool   { return i.has(fortressMask) }
func (i Improvements) Pollution() bool  { return i.has(pollutionMask) }

func (i *Improvements) SetUnit(b bool)       { i.set(unitMask, b) }
func (i *Improvements) SetCity(b bool)       { i.set(cityMask, b) }
func (i *Improvements) SetIrrigation(b bool) { i.set(irrigationMask, b) }
func (i *Improvements) SetMining(b bool)     { i.set(miningMask, b) }
func (i *Improvements) SetRoad(b bool)       { i.set(roadMask, b) }
func (i *Improvements) SetRailroad(b bool)   { i.set(railroadMask, b) }
func (i *Improvements) SetFortress(b bool)   { i.set(fortressMask, b) }
func (i *Improvements) SetPollution(b bool)  { i.set(pollutionMask, b) }

// WhichCivs is a byte with one bit per civilization slot, Red (barbarians)
// in bit 0 through Purple in bit 7. It is used for the "has explored"
// visibility byte of a tile.
type WhichCivs uint8

// Has reports whether civ's bit is set. AllCivs reports whether every bit is
// set.
func (w WhichCivs) Has(c Civilization) bool {
	if c == AllCivs {
		return w == 0xFF
	}
	if c > Purple {
		return false
	}
	return w&(1<<c) != 0
}

// Set sets or clears civ's bit. AllCivs sets or clears every bit.
func (w *WhichCivs) Set(c Civilization, b bool) {
	var mask WhichCivs
	switch {
	case c == AllCivs:
		mask = 0xFF
	case c > Purple:
		return
	default:
		mask = 1 << c
	}
	if b {
		*w |= mask
	} else {
		*w &^= mask
	}
}

func (w WhichCivs) Red() bool    { return w.Has(Red) }
func (w WhichCivs) White() bool  { return w.Has(White) }
func (w WhichCivs) Green() bool  { return w.Has(Green) }
func (w WhichCivs) Blue() bool   { return w.Has(Blue) }
func (w WhichCivs) Yellow() bool { return w.Has(Yellow) }
func (w WhichCivs) Cyan() bool   { return w.Has(Cyan) }
func (w WhichCivs) Orange() bool { return w.Has(Orange) }
func (w WhichCivs) Purple() bool { return w.Has(Purple) }
