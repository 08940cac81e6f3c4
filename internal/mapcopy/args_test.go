package mapcopy

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		source, dest string
		want         Kind
	}{
		{"a.mp", "b.MP", MPToMP},
		{"a.sav", "b.scn", SAVToSAV},
		{"a.mp", "b.sav", MPToSAV},
		{"a.SAV", "b.mp", SAVToMP},
		{"", "b.mp", InPlaceMP},
		{"", "b.sav", InPlaceSAV},
	}
	for _, tt := range tests {
		if got := KindOf(tt.source, tt.dest); got != tt.want {
			t.Errorf("KindOf(%q, %q) = %v, want %v", tt.source, tt.dest, got, tt.want)
		}
	}
}

func TestParseArgsDefaults(t *testing.T) {
	a, err := ParseArgs([]string{"world.mp", "game.sav"})
	if err != nil {
		t.Fatal(err)
	}
	want := &Args{
		Source:    "world.mp",
		Dest:      "game.sav",
		Kind:      MPToSAV,
		Options:   Defaults(MPToSAV),
		SourceMap: DefaultMap,
		DestMap:   DefaultMap,
	}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if a.Options.Fertility != Calc || a.Options.Improvements != Off || a.Options.Terrain != Copy {
		t.Errorf("MP->SAV defaults %+v", a.Options)
	}

	a, err = ParseArgs([]string{"game.sav", "+i"})
	if err != nil {
		t.Fatal(err)
	}
	if a.Kind != InPlaceSAV || a.Source != "" || a.Dest != "game.sav" {
		t.Errorf("in place: %+v", a)
	}
	if diff := cmp.Diff(Options{Improvements: Copy, Verbose: On, Backup: On}, a.Options); diff != "" {
		t.Errorf("in place options (-want +got):\n%s", diff)
	}
}

func TestParseArgsOptions(t *testing.T) {
	a, err := ParseArgs([]string{"a.sav", "b.sav",
		"-T", "+improvement", "+v", "-bc", "+cr", "+OWNERSHIP",
		"+f:CALCALL", "+rs:clear", "+cv", "-seed", "-b", "+verb:dev",
		"+sm:2", "+dm:ALL"})
	if err != nil {
		t.Fatal(err)
	}
	want := Options{
		Seed: Off, Terrain: Off, Improvements: Copy, Visibility: Copy,
		Ownership: Copy, BodyCounter: Off, CityRadius: Copy,
		Verbose: Dev, Backup: Off, Fertility: CalcAll, CivView: Copy, ResourceHidden: Clear,
	}
	if diff := cmp.Diff(want, a.Options); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if a.SourceMap != 2 || a.DestMap != AllMaps {
		t.Errorf("maps %d %d", a.SourceMap, a.DestMap)
	}
}

func TestParseArgsModes(t *testing.T) {
	tests := []struct {
		arg  string
		get  func(Options) Mode
		want Mode
	}{
		{"+f", func(o Options) Mode { return o.Fertility }, Copy},
		{"-fertility", func(o Options) Mode { return o.Fertility }, Off},
		{"+fertility:adjust", func(o Options) Mode { return o.Fertility }, Adjust},
		{"-f:zero", func(o Options) Mode { return o.Fertility }, Zero},
		{"+f:calc", func(o Options) Mode { return o.Fertility }, Calc},
		{"+rs:set", func(o Options) Mode { return o.ResourceHidden }, Set},
		{"-rs", func(o Options) Mode { return o.ResourceHidden }, Off},
		{"+cv:current", func(o Options) Mode { return o.CivView }, Current},
		{"-verbose", func(o Options) Mode { return o.Verbose }, Off},
		{"-verb:DEV", func(o Options) Mode { return o.Verbose }, Dev},
		{"+backup", func(o Options) Mode { return o.Backup }, On},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			a, err := ParseArgs([]string{"a.mp", "b.sav", tt.arg})
			if err != nil {
				t.Fatal(err)
			}
			if got := tt.get(a.Options); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown", []string{"a.mp", "b.mp", "+x"}},
		{"bare sign", []string{"a.mp", "b.mp", "+"}},
		{"bad fertility", []string{"a.mp", "b.mp", "+f:more"}},
		{"no map number", []string{"a.sav", "b.sav", "+sm:"}},
		{"map five", []string{"a.sav", "b.sav", "+dm:5"}},
		{"map zero", []string{"a.sav", "b.sav", "+sm:0"}},
		{"map word", []string{"a.sav", "b.sav", "+sm:two"}},
		{"option first", []string{"+t", "b.sav"}},
		{"MP source map", []string{"a.mp", "b.sav", "+sm:2"}},
		{"MP dest map", []string{"a.sav", "b.mp", "+dm:2"}},
		{"MP dest all", []string{"a.sav", "b.mp", "+dm:all"}},
		{"all onto one", []string{"a.sav", "b.sav", "+sm:all", "+dm:1"}},
		{"start positions", []string{"a.sav", "b.sav", "+cs"}},
		{"start positions in place", []string{"a.mp", "+cs"}},
		{"civ view copy", []string{"a.mp", "b.sav", "+cv"}},
		{"civ view current", []string{"a.sav", "b.mp", "+cv:current"}},
		{"civ view current in place", []string{"a.mp", "+cv:current"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			if !errors.Is(err, ErrInvalidOption) {
				t.Errorf("got %v, want ErrInvalidOption", err)
			}
		})
	}
}

func TestParseArgsHelp(t *testing.T) {
	for _, args := range [][]string{nil, {"/?"}, {"a.mp", "-h"}, {"a.mp", "b.mp", "--HELP"}} {
		if _, err := ParseArgs(args); !errors.Is(err, ErrHelp) {
			t.Errorf("%q: got %v, want ErrHelp", args, err)
		}
	}
	if _, err := ParseArgs([]string{"--version"}); !errors.Is(err, ErrVersion) {
		t.Errorf("got %v, want ErrVersion", err)
	}
	if !strings.HasPrefix(Help, "mapcopy [source] dest [ options ]") {
		t.Errorf("help starts with %q", strings.SplitN(Help, "\n", 2)[0])
	}
}

func TestBackupByDefault(t *testing.T) {
	a, err := ParseArgs([]string{"a.mp", "b.mp"}, BackupByDefault(false))
	if err != nil {
		t.Fatal(err)
	}
	if a.Options.Backup != Off {
		t.Errorf("backup %v, want off", a.Options.Backup)
	}
	a, err = ParseArgs([]string{"a.mp", "b.mp", "+b"}, BackupByDefault(false))
	if err != nil {
		t.Fatal(err)
	}
	if a.Options.Backup != On {
		t.Errorf("+b: backup %v, want on", a.Options.Backup)
	}
}

func TestSelectMaps(t *testing.T) {
	tests := []struct {
		sm, dm             int
		srcMulti, dstMulti bool
		wantSM, wantDM     int
	}{
		{DefaultMap, DefaultMap, true, true, AllMaps, AllMaps},
		{AllMaps, DefaultMap, true, true, AllMaps, AllMaps},
		{2, DefaultMap, true, true, 2, 1},
		{DefaultMap, 3, true, true, 1, 3},
		{DefaultMap, DefaultMap, true, false, 1, 1},
		{DefaultMap, AllMaps, false, true, 1, AllMaps},
	}
	for _, tt := range tests {
		sm, dm := selectMaps(tt.sm, tt.dm, tt.srcMulti, tt.dstMulti)
		if sm != tt.wantSM || dm != tt.wantDM {
			t.Errorf("selectMaps(%d, %d, %v, %v) = %d, %d, want %d, %d",
				tt.sm, tt.dm, tt.srcMulti, tt.dstMulti, sm, dm, tt.wantSM, tt.wantDM)
		}
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		verbose Mode
		base    zapcore.Level
		want    zapcore.Level
	}{
		{Off, zapcore.WarnLevel, zapcore.WarnLevel},
		{On, zapcore.WarnLevel, zapcore.InfoLevel},
		{Dev, zapcore.WarnLevel, zapcore.DebugLevel},
		{Off, zapcore.DebugLevel, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		if got := (Options{Verbose: tt.verbose}).LogLevel(tt.base); got != tt.want {
			t.Errorf("%v over %v: got %v, want %v", tt.verbose, tt.base, got, tt.want)
		}
	}
}
