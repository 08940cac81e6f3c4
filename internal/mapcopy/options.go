package mapcopy

import (
	"fmt"

	"github.com/badpandabear/MapCopy/civ2"
)

// Mode is the setting of one option. Most options are only Off or Copy; the
// others add their own modes.
type Mode uint8

const (
	Off Mode = iota
	Copy
	Calc    // fertility: recompute grassland and plains
	CalcAll // fertility: recompute all land
	Adjust  // fertility: copy then lower near cities
	Zero    // fertility: clear
	Current // civ view: every civ sees the current improvements
	Set     // resource suppression: hide every resource
	Clear   // resource suppression: show every resource
	Dev     // verbose: debug output
)

// On is Copy for the options that only switch something on.
const On = Copy

var modeNames = [...]string{"off", "copy", "calc", "calcall", "adjust", "zero", "current", "set", "clear", "dev"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Kind is the pair of file types taking part in a copy.
type Kind uint8

const (
	MPToMP Kind = iota
	SAVToSAV
	MPToSAV
	SAVToMP
	InPlaceMP
	InPlaceSAV
	numKinds
)

var kindNames = [...]string{"MP->MP", "SAV->SAV", "MP->SAV", "SAV->MP", "MP", "SAV"}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) InPlace() bool { return k == InPlaceMP || k == InPlaceSAV }

// SourceIsMP reports whether the file read from is a .mp file. For in-place
// kinds the source is the destination.
func (k Kind) SourceIsMP() bool { return k == MPToMP || k == MPToSAV || k == InPlaceMP }

func (k Kind) DestIsMP() bool { return k == MPToMP || k == SAVToMP || k == InPlaceMP }

// KindOf works out the kind of copy from the file names. An empty source
// means the destination is modified in place.
func KindOf(source, dest string) Kind {
	srcMP, dstMP := civ2.IsMPFile(source), civ2.IsMPFile(dest)
	switch {
	case source == "" && dstMP:
		return InPlaceMP
	case source == "":
		return InPlaceSAV
	case srcMP && dstMP:
		return MPToMP
	case srcMP:
		return MPToSAV
	case dstMP:
		return SAVToMP
	default:
		return SAVToSAV
	}
}

type Options struct {
	Seed           Mode
	Terrain        Mode // type and river
	Improvements   Mode
	Visibility     Mode
	Ownership      Mode
	CivStart       Mode
	BodyCounter    Mode
	CityRadius     Mode
	Verbose        Mode // Off, On or Dev
	Backup         Mode
	Fertility      Mode // Off, Copy, Calc, CalcAll, Adjust or Zero
	CivView        Mode // Off, Copy or Current
	ResourceHidden Mode // Off, Copy, Set or Clear
}

var defaults = [numKinds]Options{
	MPToMP: {
		Seed: Copy, Terrain: Copy, Improvements: Copy, Visibility: Copy,
		Ownership: Copy, CivStart: Copy, BodyCounter: Copy, CityRadius: Copy,
		Verbose: On, Backup: On, Fertility: Copy, CivView: Off, ResourceHidden: Copy,
	},
	SAVToSAV: {
		Seed: Copy, Terrain: Copy, BodyCounter: Copy,
		Verbose: On, Backup: On, Fertility: Adjust, ResourceHidden: Copy,
	},
	MPToSAV: {
		Seed: Copy, Terrain: Copy, BodyCounter: Copy,
		Verbose: On, Backup: On, Fertility: Calc, ResourceHidden: Copy,
	},
	SAVToMP: {
		Seed: Copy, Terrain: Copy, BodyCounter: Copy,
		Verbose: On, Backup: On, ResourceHidden: Copy,
	},
	InPlaceMP:  {Verbose: On, Backup: On},
	InPlaceSAV: {Verbose: On, Backup: On},
}

// Defaults returns the options used for k before any are given.
func Defaults(k Kind) Options {
	if k >= numKinds {
		return Options{}
	}
	return defaults[k]
}
