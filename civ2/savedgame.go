package civ2

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// SavedGame is a Civilization II saved game, scenario or .mp map file. Only
// the map header, the start positions and the map blocks are modelled; saving
// a .sav or .scn writes over those parts of an existing file.
type SavedGame struct {
	header       FileHeader
	start        *StartPositions // .mp files only
	maps         []*Map
	version      Version
	headerOffset int64
	isMP         bool
	loaded       bool
	rules        *Rules
	log          *zap.Logger
}

type Option func(*SavedGame)

func WithLogger(l *zap.Logger) Option {
	return func(g *SavedGame) {
		g.log = l
	}
}

func WithRules(r *Rules) Option {
	return func(g *SavedGame) {
		g.rules = r
	}
}

func New(opts ...Option) *SavedGame {
	g := &SavedGame{}
	for _, o := range opts {
		o(g)
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	if g.rules == nil {
		g.rules = DefaultRules()
	}
	return g
}

// IsMPFile reports whether path names a .mp map file.
func IsMPFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp")
}

func (g *SavedGame) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, ioError(err, "open"))
	}
	defer f.Close()
	if err := g.read(f, IsMPFile(path)); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	g.log.Info("loaded file",
		zap.String("file", path),
		zap.Stringer("version", g.version),
		zap.Int("maps", len(g.maps)))
	return nil
}

// read replaces the content of g with the maps found in f. g is left alone
// when reading fails.
func (g *SavedGame) read(f InFile, isMP bool) error {
	version := VersionMP
	var offset int64
	if !isMP {
		var err error
		version, offset, err = ResolveHeaderOffset(f)
		if err != nil {
			return err
		}
	}
	if err := seek(f, offset); err != nil {
		return err
	}
	h, err := readHeader(f)
	if err != nil {
		return err
	}
	secondary := 0
	if version.SupportsMultiMaps() {
		n, err := readW(f)
		if err != nil {
			return err
		}
		if int(n) >= MaxMaps {
			return unsupported("%d secondary maps, at most %d supported", n, MaxMaps-1)
		}
		secondary = int(n)
	}
	g.log.Info("read header",
		zap.Uint16("width", h.Width),
		zap.Uint16("height", h.Height),
		zap.Uint16("area", h.Area),
		zap.Uint16("flat", h.FlatEarth),
		zap.Uint16("seed", h.Seed),
		zap.Uint16("locatorWidth", h.LocatorWidth),
		zap.Uint16("locatorHeight", h.LocatorHeight),
		zap.Int("secondaryMaps", secondary))

	var start *StartPositions
	if isMP {
		p, err := readStartPositions(f)
		if err != nil {
			return err
		}
		start = &p
		g.log.Debug("read start positions")
	}

	maps := make([]*Map, 0, secondary+1)
	for i := 0; i <= secondary; i++ {
		m := newMap(h, i, !isMP, g.rules, g.log)
		if err := m.load(f); err != nil {
			return fmt.Errorf("map %d: %w", i+1, err)
		}
		if version.SupportsMultiMaps() {
			s, err := readW(f)
			if err != nil {
				return fmt.Errorf("map %d seed: %w", i+1, err)
			}
			m.seed = s
			m.log.Debug("read map seed", zap.Uint16("seed", s))
		}
		maps = append(maps, m)
	}

	g.header = h
	g.start = start
	g.maps = maps
	g.version = version
	g.headerOffset = offset
	g.isMP = isMP
	g.loaded = true
	return nil
}

// Save writes the maps to path. A .mp file is created when missing; a saved
// game must already exist and is only overwritten where the maps live.
func (g *SavedGame) Save(path string) error {
	if err := g.check(); err != nil {
		return err
	}
	if len(g.maps) == 0 {
		return invalidArgument("cannot save a file with no maps")
	}
	if len(g.maps) > 1 && !g.SupportsMultiMaps() {
		return unsupported("cannot save %d maps into a %v file", len(g.maps), g.version)
	}
	if IsMPFile(path) != g.isMP {
		return unsupported("cannot save a %v file as %s", g.version, path)
	}

	var f *os.File
	var err error
	if g.isMP {
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	} else {
		f, err = os.OpenFile(path, os.O_RDWR, 0)
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("save %s: %w", path, unsupported("cannot create saved game from scratch"))
		}
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, ioError(err, "open"))
	}
	err = g.write(f)
	if err == nil && g.isMP {
		err = truncateHere(f)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = ioError(cerr, "close")
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	g.log.Info("saved file", zap.String("file", path), zap.Int("maps", len(g.maps)))
	return nil
}

// truncateHere drops whatever follows the current offset, left over from a
// larger map that used to be in the file.
func truncateHere(f *os.File) error {
	end, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return ioError(err, "seek")
	}
	if err := f.Truncate(end); err != nil {
		return ioError(err, "truncate")
	}
	return nil
}

type readWriteSeeker interface {
	io.Reader
	io.Writer
	io.Seeker
}

func (g *SavedGame) write(f readWriteSeeker) error {
	var offset int64
	if !g.isMP {
		v, off, err := ResolveHeaderOffset(f)
		if err != nil {
			return err
		}
		if v != g.version {
			return unsupported("destination is %v, maps were read from %v", v, g.version)
		}
		offset = off
	}
	if err := seek(f, offset); err != nil {
		return err
	}
	if err := writeBytes(f, g.header.bytes()); err != nil {
		return err
	}
	if g.SupportsMultiMaps() {
		if err := writeBytes(f, w(uint16(len(g.maps)-1))); err != nil {
			return err
		}
	}
	g.log.Debug("wrote header")
	if g.isMP {
		if err := writeBytes(f, g.start.bytes()); err != nil {
			return err
		}
		g.log.Debug("wrote start positions")
	}
	for i, m := range g.maps {
		if err := m.save(f); err != nil {
			return fmt.Errorf("map %d: %w", i+1, err)
		}
		if g.SupportsMultiMaps() {
			if err := writeBytes(f, w(m.seed)); err != nil {
				return fmt.Errorf("map %d seed: %w", i+1, err)
			}
		}
	}
	return nil
}

// CreateMP replaces g with a single blank ocean map in .mp format.
func (g *SavedGame) CreateMP(width, height int, flat bool) error {
	if width <= 0 || height <= 0 || width%2 != 0 {
		return invalidArgument("map size %dx%d, width must be even and both positive", width, height)
	}
	if width*height/2 > 0xFFFF || width > 0xFFFF || height > 0xFFFF {
		return invalidArgument("map size %dx%d too large", width, height)
	}
	g.header = newHeader(width, height, flat, mpSeed)
	start := unsetStartPositions()
	g.start = &start
	g.maps = []*Map{newMap(g.header, 0, false, g.rules, g.log)}
	g.version = VersionMP
	g.headerOffset = 0
	g.isMP = true
	g.loaded = true
	return nil
}

// CreateSAV always fails: the rest of a saved game cannot be made up.
func (g *SavedGame) CreateSAV(width, height, numMaps int) error {
	return unsupported("cannot create a new saved game (%dx%d, %d maps)", width, height, numMaps)
}

func (g *SavedGame) check() error {
	if !g.loaded {
		return ErrNotLoaded
	}
	return nil
}

// AddMap inserts a blank map at position n, 0 <= n <= NumMaps.
func (g *SavedGame) AddMap(n int) error {
	if err := g.check(); err != nil {
		return err
	}
	if !g.SupportsMultiMaps() {
		return unsupported("%v files hold a single map", g.version)
	}
	if n < 0 || n > len(g.maps) {
		return invalidArgument("cannot add map at %d, have %d", n, len(g.maps))
	}
	if len(g.maps) >= MaxMaps {
		return invalidArgument("cannot add map, already at %d", MaxMaps)
	}
	m := newMap(g.header, n, !g.isMP, g.rules, g.log)
	g.maps = slices.Insert(g.maps, n, m)
	g.renumber()
	g.log.Info("added map", zap.Int("position", n), zap.Int("maps", len(g.maps)))
	return nil
}

// RemoveMap drops the map at position n. The last map cannot be removed.
func (g *SavedGame) RemoveMap(n int) error {
	if err := g.check(); err != nil {
		return err
	}
	if n < 0 || n >= len(g.maps) {
		return invalidArgument("cannot remove map %d, have %d", n, len(g.maps))
	}
	if len(g.maps) == 1 {
		return invalidArgument("cannot remove the only map")
	}
	g.maps = slices.Delete(g.maps, n, n+1)
	g.renumber()
	g.log.Info("removed map", zap.Int("position", n), zap.Int("maps", len(g.maps)))
	return nil
}

func (g *SavedGame) renumber() {
	for i, m := range g.maps {
		if m.position != i {
			m.position = i
			m.log = g.log.With(zap.Int("map", i))
			m.retag()
		}
	}
}

func (g *SavedGame) Map(n int) (*Map, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	if n < 0 || n >= len(g.maps) {
		return nil, invalidArgument("no map %d, have %d", n, len(g.maps))
	}
	return g.maps[n], nil
}

func (g *SavedGame) NumMaps() int {
	return len(g.maps)
}

// Seed is the resource seed of the header. ToT files also keep one per map.
func (g *SavedGame) Seed() (uint16, error) {
	if err := g.check(); err != nil {
		return 0, err
	}
	return g.header.Seed, nil
}

func (g *SavedGame) SetSeed(s uint16) error {
	if err := g.check(); err != nil {
		return err
	}
	g.header.Seed = s
	if !g.SupportsMultiMaps() {
		for _, m := range g.maps {
			m.seed = s
		}
	}
	return nil
}

func (g *SavedGame) StartPositions() (StartPositions, error) {
	if err := g.check(); err != nil {
		return StartPositions{}, err
	}
	if g.start == nil {
		return StartPositions{}, unsupported("start positions are only kept in .mp files")
	}
	return *g.start, nil
}

func (g *SavedGame) SetStartPositions(p StartPositions) error {
	if err := g.check(); err != nil {
		return err
	}
	if g.start == nil {
		return unsupported("start positions are only kept in .mp files")
	}
	*g.start = p
	return nil
}

func (g *SavedGame) Width() int  { return int(g.header.Width) }
func (g *SavedGame) Height() int { return int(g.header.Height) }

func (g *SavedGame) Version() Version        { return g.version }
func (g *SavedGame) HeaderOffset() int64     { return g.headerOffset }
func (g *SavedGame) IsMapOnly() bool         { return g.isMP }
func (g *SavedGame) IsFlatEarth() bool       { return g.header.FlatEarth != 0 }
func (g *SavedGame) SupportsMultiMaps() bool { return g.version.SupportsMultiMaps() }
func (g *SavedGame) Loaded() bool            { return g.loaded }

func (g *SavedGame) Rules() *Rules { return g.rules }

func (g *SavedGame) SetRules(r *Rules) {
	g.rules = r
	for _, m := range g.maps {
		m.rules = r
	}
}
