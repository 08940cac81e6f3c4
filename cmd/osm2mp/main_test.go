package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/badpandabear/MapCopy/civ2"
)

const island = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="10.2" lon="20.2" visible="true"><tag k="place" v="city"/><tag k="name" v="Port"/></node>
  <node id="2" lat="10.1" lon="20.1" visible="true"/>
  <node id="3" lat="10.1" lon="20.4" visible="true"/>
  <node id="4" lat="10.4" lon="20.4" visible="true"/>
  <node id="5" lat="10.4" lon="20.1" visible="true"/>
  <way id="10" visible="true">
    <nd ref="2"/><nd ref="3"/><nd ref="4"/><nd ref="5"/><nd ref="2"/>
    <tag k="natural" v="wood"/>
  </way>
</osm>`

func TestOsm2mp(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("MAPCOPY_LOG_LEVEL", "error")
	in := filepath.Join(dir, "island.osm")
	if err := os.WriteFile(in, []byte(island), 0o644); err != nil {
		t.Fatal(err)
	}
	outFile := filepath.Join(dir, "island.mp")

	var out bytes.Buffer
	args := []string{"--width=20", "--height=20", "--base=ocean", in, outFile, "10.25", "20.25"}
	if code := run(args, &out); code != 0 {
		t.Fatalf("exit %d: %s", code, out.String())
	}
	g := civ2.New()
	if err := g.Load(outFile); err != nil {
		t.Fatal(err)
	}
	if g.Width() != 20 || g.Height() != 20 || !g.IsFlatEarth() {
		t.Errorf("%dx%d flat=%v", g.Width(), g.Height(), g.IsFlatEarth())
	}
	m, err := g.Map(0)
	if err != nil {
		t.Fatal(err)
	}
	if tt, _ := m.TerrainType(10, 10); tt != civ2.Forest {
		t.Errorf("centre is %v, want forest", tt)
	}
	if tt, _ := m.TerrainType(0, 0); tt != civ2.Ocean {
		t.Errorf("corner is %v, want ocean", tt)
	}
	p, err := g.StartPositions()
	if err != nil {
		t.Fatal(err)
	}
	if p.X[0] < 0 || p.X[1] != -1 {
		t.Errorf("start positions %v %v", p.X[:2], p.Y[:2])
	}
}

func TestOsm2mpReplacesLargerMap(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("MAPCOPY_LOG_LEVEL", "error")
	in := filepath.Join(dir, "island.osm")
	if err := os.WriteFile(in, []byte(island), 0o644); err != nil {
		t.Fatal(err)
	}
	outFile := filepath.Join(dir, "island.mp")
	old := civ2.New()
	if err := old.CreateMP(80, 80, false); err != nil {
		t.Fatal(err)
	}
	if err := old.Save(outFile); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	args := []string{"--width=20", "--height=20", in, outFile, "10.25", "20.25"}
	if code := run(args, &out); code != 0 {
		t.Fatalf("exit %d: %s", code, out.String())
	}
	fi, err := os.Stat(outFile)
	if err != nil {
		t.Fatal(err)
	}
	// header, start positions and 200 tiles
	if fi.Size() != 14+84+200*6 {
		t.Errorf("map file is %d bytes, want %d", fi.Size(), 14+84+200*6)
	}
	g := civ2.New()
	if err := g.Load(outFile); err != nil {
		t.Fatal(err)
	}
	if g.Width() != 20 || g.Height() != 20 {
		t.Errorf("%dx%d, want 20x20", g.Width(), g.Height())
	}
}

func TestOsm2mpArgs(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"in.osm"}, "Usage: osm2mp"},
		{[]string{"in.osm", "out.mp", "north", "20"}, "invalid syntax"},
		{[]string{"--base=lava", "in.osm", "out.mp", "1", "2"}, "lava"},
		{[]string{"in.osm", "out.sav", "1", "2"}, "must be a .mp file"},
		{[]string{filepath.Join(dir, "missing.osm"), "out.mp", "1", "2"}, "missing.osm"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if code := run(tt.args, &out); code != 1 {
			t.Errorf("%q: exit %d", tt.args, code)
		}
		if !strings.Contains(out.String(), tt.want) {
			t.Errorf("%q: output %q does not contain %q", tt.args, out.String(), tt.want)
		}
	}
}
