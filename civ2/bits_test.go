package civ2

import (
	"testing"
)

func TestImprovements(t *testing.T) {
	tests := []struct {
		name string
		set  func(*Improvements, bool)
		get  func(Improvements) bool
		mask Improvements
	}{
		{"unit", (*Improvements).SetUnit, Improvements.Unit, 0x01},
		{"city", (*Improvements).SetCity, Improvements.City, 0x02},
		{"irrigation", (*Improvements).SetIrrigation, Improvements.Irrigation, 0x04},
		{"mining", (*Improvements).SetMining, Improvements.Mining, 0x08},
		{"road", (*Improvements).SetRoad, Improvements.Road, 0x10},
		{"railroad", (*Improvements).SetRailroad, Improvements.Railroad, 0x20},
		{"fortress", (*Improvements).SetFortress, Improvements.Fortress, 0x40},
		{"pollution", (*Improvements).SetPollution, Improvements.Pollution, 0x80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var i Improvements
			tt.set(&i, true)
			if i != tt.mask {
				t.Errorf("set: got 0x%02X, want 0x%02X", uint8(i), uint8(tt.mask))
			}
			if !tt.get(i) {
				t.Errorf("get after set: got false")
			}
			all := Improvements(0xFF)
			tt.set(&all, false)
			if all != 0xFF^tt.mask {
				t.Errorf("clear: got 0x%02X, want 0x%02X", uint8(all), uint8(0xFF^tt.mask))
			}
			if tt.get(all) {
				t.Errorf("get after clear: got true")
			}
		})
	}
}

func TestWhichCivs(t *testing.T) {
	var w WhichCivs
	w.Set(Red, true)
	w.Set(Purple, true)
	if w != 0x81 {
		t.Errorf("got 0x%02X, want 0x81", uint8(w))
	}
	if !w.Red() || !w.Purple() || w.White() || w.Cyan() {
		t.Errorf("unexpected bits in 0x%02X", uint8(w))
	}
	if w.Has(AllCivs) {
		t.Errorf("Has(AllCivs) on 0x81")
	}

	w.Set(AllCivs, true)
	if w != 0xFF || !w.Has(AllCivs) {
		t.Errorf("set all: got 0x%02X", uint8(w))
	}
	w.Set(Green, false)
	if w != 0xFB {
		t.Errorf("clear green: got 0x%02X, want 0xFB", uint8(w))
	}
	w.Set(Civilization(12), false)
	if w != 0xFB {
		t.Errorf("unknown civ changed bits: got 0x%02X", uint8(w))
	}
	w.Set(AllCivs, false)
	if w != 0 {
		t.Errorf("clear all: got 0x%02X", uint8(w))
	}
}

func TestTileFields(t *testing.T) {
	tile := Tile{Terrain: 0xC0, FertOwnership: 0x50}
	tile.SetType(Hills)
	if tile.Terrain != 0xC4 {
		t.Errorf("SetType kept flags wrong: 0x%02X", tile.Terrain)
	}
	tile.SetRiver(false)
	if tile.River() || !tile.ResourceHidden() || tile.Type() != Hills {
		t.Errorf("SetRiver(false): 0x%02X", tile.Terrain)
	}
	tile.SetFertility(0x1C)
	if tile.Fertility() != 0x0C || tile.Ownership() != Cyan {
		t.Errorf("SetFertility: 0x%02X", tile.FertOwnership)
	}
	tile.SetOwnership(Orange)
	if tile.Fertility() != 0x0C || tile.Ownership() != Orange {
		t.Errorf("SetOwnership: 0x%02X", tile.FertOwnership)
	}
}
