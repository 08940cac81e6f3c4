package civ2

import (
	"io"
)

type InFile interface {
	io.Reader
	io.Seeker
}

type OutFile interface {
	io.Writer
	io.Seeker
}

func readBytes(f io.Reader, l int) ([]byte, error) {
	b := make([]byte, l)
	n, err := io.ReadFull(f, b)
	if err != nil {
		return nil, ioError(err, "read %d bytes, expected %d", n, l)
	}
	return b, nil
}

func readW(f io.Reader) (uint16, error) {
	b, err := readBytes(f, 2)
	if err != nil {
		return 0, err
	}
	return fromW(b), nil
}

func readL(f io.Reader) (uint32, error) {
	b, err := readBytes(f, 4)
	if err != nil {
		return 0, err
	}
	return fromL(b), nil
}

func seek(f io.Seeker, offset int64) error {
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return ioError(err, "seek to 0x%X", offset)
	}
	return nil
}

// ResolveHeaderOffset reads the version code of a saved game and returns the
// byte offset of its map header.
func ResolveHeaderOffset(f InFile) (Version, int64, error) {
	if err := seek(f, versionOffset); err != nil {
		return 0, 0, err
	}
	code, err := readW(f)
	if err != nil {
		return 0, 0, err
	}
	v := Version(code)
	switch v {
	case VersionCiC:
		return v, cicHeaderOffset, nil
	case VersionFW, VersionMGE:
		return v, fwHeaderOffset, nil
	case VersionToT10:
		off, err := transporterHeaderOffset(f, tot10TransporterOffset)
		return v, off, err
	case VersionToT11:
		off, err := transporterHeaderOffset(f, tot11TransporterOffset)
		return v, off, err
	}
	return 0, 0, unsupported("unknown saved game version 0x%02X", code)
}

func transporterHeaderOffset(f InFile, base int64) (int64, error) {
	if err := seek(f, base); err != nil {
		return 0, err
	}
	count, err := readL(f)
	if err != nil {
		return 0, err
	}
	return base + 4 + int64(count)*transporterSize, nil
}

func readHeader(f io.Reader) (FileHeader, error) {
	b, err := readBytes(f, headerSize)
	if err != nil {
		return FileHeader{}, err
	}
	h := headerFromBytes(b)
	if h.Width == 0 || h.Height == 0 || int(h.Area) != int(h.Width)*int(h.Height)/2 {
		return FileHeader{}, unsupported("header %dx%d has area %d, expected %d", h.Width, h.Height, h.Area, int(h.Width)*int(h.Height)/2)
	}
	return h, nil
}

func readStartPositions(f io.Reader) (StartPositions, error) {
	b, err := readBytes(f, startPositionsSize)
	if err != nil {
		return StartPositions{}, err
	}
	return startPositionsFromBytes(b), nil
}

// load reads the optional civ view block and then the terrain block.
func (m *Map) load(f io.Reader) error {
	if m.views != nil {
		b, err := readBytes(f, m.area*civViewSlots)
		if err != nil {
			return err
		}
		for i, v := range b {
			m.views[i] = Improvements(v)
		}
		m.log.Debug("read civ view map")
	}
	b, err := readBytes(f, m.area*tileSize)
	if err != nil {
		return err
	}
	for i := range m.tiles {
		m.tiles[i] = tileFromBytes(b[i*tileSize:])
	}
	m.log.Debug("read terrain map")
	return nil
}
