package civ2

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeFertility(t *testing.T) {
	tests := []struct {
		name    string
		terrain TerrainType
		center  *TerrainType
		want    uint8
	}{
		{name: "plains", terrain: Plains, want: 14},
		{name: "hills", terrain: Hills, want: 8},
		{name: "desert clamps up", terrain: Desert, want: 8},
		{name: "ocean", terrain: Ocean, want: 10},
		{name: "forest", terrain: Forest, want: 14},
		{name: "grassland clamps down", terrain: Grassland, want: 15},
		{name: "plains island rounds half up", terrain: Ocean, center: ptr(Plains), want: 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMap(t, 40, 40, false)
			fill(t, m, tt.terrain)
			if tt.center != nil {
				if err := m.SetTerrainType(10, 10, *tt.center); err != nil {
					t.Fatal(err)
				}
			}
			got, err := m.ComputeFertility(10, 10)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestGrasslandWithoutShieldLosesOne(t *testing.T) {
	m := newTestMap(t, 40, 40, false)
	fill(t, m, Ocean)
	for _, c := range [][2]int{{20, 20}, {24, 20}} {
		if err := m.SetTerrainType(c[0], c[1], Grassland); err != nil {
			t.Fatal(err)
		}
	}
	with, _ := m.HasGrasslandShield(20, 20)
	without, _ := m.HasGrasslandShield(24, 20)
	if with == without {
		t.Fatalf("test tiles need different shields, got %v and %v", with, without)
	}
	// Neither tile is in the other's city radius.
	a, err := m.ComputeFertility(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.ComputeFertility(24, 20)
	if err != nil {
		t.Fatal(err)
	}
	// in sixths: 4*60 + 840 = 1080 -> 11.25 -> 11
	//            4*48 + 840 = 1032 -> 10.75 -> 11, minus 1
	if a != 11 || b != 10 {
		t.Errorf("got %d and %d, want 11 and 10", a, b)
	}
}

func TestGrasslandAmongShields(t *testing.T) {
	m := newTestMap(t, 40, 40, false)
	fill(t, m, Grassland)
	m.grassShields = make([]bool, m.area)
	for i := range m.grassShields {
		m.grassShields[i] = true
	}

	if err := m.CalcFertility(10, 10); err != nil {
		t.Fatal(err)
	}
	calc, _ := m.Fertility(10, 10)
	// in sixths: 32 * (3*16 + 2*6) = 1920 -> 20, clamped
	if calc != 15 {
		t.Fatalf("calc: got %d, want 15", calc)
	}

	var imp Improvements
	imp.SetCity(true)
	if err := m.SetImprovements(11, 5, imp); err != nil {
		t.Fatal(err)
	}
	if err := m.AdjustFertility(10, 10); err != nil {
		t.Fatal(err)
	}
	got, _ := m.Fertility(10, 10)
	if want := max(0, int(calc)-8); int(got) != want {
		t.Errorf("adjust: got %d, want %d", got, want)
	}
}

func TestCalcFertilityKeepsOwnership(t *testing.T) {
	m := newTestMap(t, 40, 40, false)
	fill(t, m, Plains)
	if err := m.SetOwnership(10, 10, Green); err != nil {
		t.Fatal(err)
	}
	if err := m.CalcFertility(10, 10); err != nil {
		t.Fatal(err)
	}
	f, _ := m.Fertility(10, 10)
	o, _ := m.Ownership(10, 10)
	if f != 14 || o != Green {
		t.Errorf("got fertility %d owner %v, want 14 green", f, o)
	}
}

func TestCalcFertilityUsesMapRules(t *testing.T) {
	g := New()
	if err := g.CreateMP(40, 40, false); err != nil {
		t.Fatal(err)
	}
	r := DefaultRules()
	tr, _ := r.Terrain(0)
	tr.Set(Plains, TerrainInfo{Food: 0})
	g.SetRules(r)
	m, _ := g.Map(0)
	fill(t, m, Plains)
	got, err := m.ComputeFertility(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got != 8 {
		t.Errorf("barren plains: got %d, want 8", got)
	}
}

func TestAdjustFertility(t *testing.T) {
	tests := []struct {
		name  string
		city  [2]int
		start uint8
		want  uint8
	}{
		{name: "city at centre", city: [2]int{10, 10}, start: 14, want: 6},
		{name: "city at distance 3", city: [2]int{11, 5}, start: 14, want: 6},
		{name: "city too far", city: [2]int{10, 2}, start: 14, want: 14},
		{name: "already reduced", city: [2]int{11, 11}, start: 6, want: 6},
		{name: "no city", start: 12, want: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMap(t, 40, 40, false)
			if tt.city != [2]int{} {
				var imp Improvements
				imp.SetCity(true)
				if err := m.SetImprovements(tt.city[0], tt.city[1], imp); err != nil {
					t.Fatal(err)
				}
			}
			if err := m.SetFertility(10, 10, tt.start); err != nil {
				t.Fatal(err)
			}
			if err := m.AdjustFertility(10, 10); err != nil {
				t.Fatal(err)
			}
			got, _ := m.Fertility(10, 10)
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDiffFertility(t *testing.T) {
	a := newTestMap(t, 10, 10, false)
	b := newTestMap(t, 10, 10, false)
	a.SetFertility(2, 2, 9)
	b.SetFertility(2, 2, 11)
	b.SetFertility(5, 7, 3)
	got, err := DiffFertility(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := []FertilityDiff{{X: 2, Y: 2, A: 9, B: 11}, {X: 5, Y: 7, A: 0, B: 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	c := newTestMap(t, 12, 10, false)
	if _, err := DiffFertility(a, c); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("size mismatch: got %v, want invalid argument", err)
	}
}
