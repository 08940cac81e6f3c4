package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/badpandabear/MapCopy/civ2"
)

func writeMP(t *testing.T, path string, fertility map[[2]int]uint8) {
	t.Helper()
	g := civ2.New()
	if err := g.CreateMP(10, 10, false); err != nil {
		t.Fatal(err)
	}
	m, err := g.Map(0)
	if err != nil {
		t.Fatal(err)
	}
	for p, f := range fertility {
		if err := m.SetFertility(p[0], p[1], f); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.Save(path); err != nil {
		t.Fatal(err)
	}
}

func TestFertDiff(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	a, b := filepath.Join(dir, "a.mp"), filepath.Join(dir, "b.mp")
	writeMP(t, a, map[[2]int]uint8{{2, 2}: 9, {4, 8}: 12})
	writeMP(t, b, map[[2]int]uint8{{2, 2}: 11, {4, 8}: 12, {7, 9}: 3})

	var out bytes.Buffer
	if code := run([]string{"--log-level=error", a, b}, &out); code != 0 {
		t.Fatalf("exit %d: %s", code, out.String())
	}
	want := "2,2 9,11\n7,9 0,3\n2 differences found.\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestFertDiffUsage(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	var out bytes.Buffer
	if code := run(nil, &out); code != 0 {
		t.Errorf("no args: exit %d", code)
	}
	out.Reset()
	if code := run([]string{"only.sav"}, &out); code != 1 {
		t.Errorf("one file: exit %d", code)
	}
	out.Reset()
	if code := run([]string{"--map=2", filepath.Join(dir, "x.mp"), filepath.Join(dir, "y.mp")}, &out); code != 1 {
		t.Errorf("missing files: exit %d", code)
	}
}
