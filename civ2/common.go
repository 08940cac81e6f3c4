package civ2

import "fmt"

const (
	versionOffset = 10 // u16 version code in every saved game

	cicHeaderOffset = 0x3478
	fwHeaderOffset  = 0x3586 // also MGE

	// ToT files keep a variable length transporter table in front of the map
	// header; its u32 entry count sits at a fixed offset.
	tot10TransporterOffset = 0x7420
	tot11TransporterOffset = 0x74C8
	transporterSize        = 14

	civViewSlots = 7 // White..Purple, barbarians have none
	MaxMaps      = 4 // body counters keep the map position in 2 bits

	mpSeed = 1
)

type Version uint16

const (
	VersionMP    Version = 0 // .mp files carry no version code
	VersionCiC   Version = 0x27
	VersionFW    Version = 0x28
	VersionMGE   Version = 0x2C
	VersionToT10 Version = 0x31
	VersionToT11 Version = 0x32
)

func (v Version) String() string {
	switch v {
	case VersionMP:
		return "Map File"
	case VersionCiC:
		return "Conflicts in Civilization"
	case VersionFW:
		return "Fantastic Worlds"
	case VersionMGE:
		return "Multiplayer Gold Edition"
	case VersionToT10:
		return "Test of Time 1.0"
	case VersionToT11:
		return "Test of Time 1.1"
	}
	return fmt.Sprintf("version(0x%02X)", uint16(v))
}

// SupportsMultiMaps reports whether the version stores a secondary map count
// and a seed per map.
func (v Version) SupportsMultiMaps() bool {
	return v == VersionToT10 || v == VersionToT11
}

func w(i uint16) []byte {
	return []byte{byte(i & 0xff), byte((i >> 8) & 0xff)}
}

func fromW(b []byte) uint16 {
	return uint16(b[1])<<8 + uint16(b[0])
}

func fromL(b []byte) uint32 {
	return uint32(b[3])<<24 + uint32(b[2])<<16 + uint32(b[1])<<8 + uint32(b[0])
}

func (h FileHeader) bytes() []byte {
	var b []byte
	for _, v := range []uint16{h.Width, h.Height, h.Area, h.FlatEarth, h.Seed, h.LocatorWidth, h.LocatorHeight} {
		b = append(b, w(v)...)
	}
	return b
}

func headerFromBytes(b []byte) FileHeader {
	return FileHeader{
		Width:         fromW(b[0:]),
		Height:        fromW(b[2:]),
		Area:          fromW(b[4:]),
		FlatEarth:     fromW(b[6:]),
		Seed:          fromW(b[8:]),
		LocatorWidth:  fromW(b[10:]),
		LocatorHeight: fromW(b[12:]),
	}
}

func (p StartPositions) bytes() []byte {
	b := make([]byte, 0, startPositionsSize)
	for _, x := range p.X {
		b = append(b, w(uint16(x))...)
	}
	for _, y := range p.Y {
		b = append(b, w(uint16(y))...)
	}
	return b
}

func startPositionsFromBytes(b []byte) StartPositions {
	var p StartPositions
	for i := range NumStartPositions {
		p.X[i] = int16(fromW(b[2*i:]))
		p.Y[i] = int16(fromW(b[2*(NumStartPositions+i):]))
	}
	return p
}

func unsetStartPositions() StartPositions {
	var p StartPositions
	for i := range NumStartPositions {
		p.X[i] = -1
		p.Y[i] = -1
	}
	return p
}

func newHeader(width, height int, flat bool, seed uint16) FileHeader {
	h := FileHeader{
		Width:         uint16(width),
		Height:        uint16(height),
		Area:          uint16(width * height / 2),
		Seed:          seed,
		LocatorWidth:  uint16((width + 3) / 4),
		LocatorHeight: uint16((height + 3) / 4),
	}
	if flat {
		h.FlatEarth = 1
	}
	return h
}
