package civ2

import (
	"io"
)

func writeBytes(f io.Writer, b []byte) error {
	n, err := f.Write(b)
	if err != nil {
		return ioError(err, "write %d bytes", len(b))
	}
	if n != len(b) {
		return ioError(io.ErrShortWrite, "wrote %d bytes, expected %d", n, len(b))
	}
	return nil
}

func (m *Map) save(f io.Writer) error {
	if m.views != nil {
		b := make([]byte, len(m.views))
		for i, v := range m.views {
			b[i] = byte(v)
		}
		if err := writeBytes(f, b); err != nil {
			return err
		}
		m.log.Debug("wrote civ view map")
	}
	b := make([]byte, m.area*tileSize)
	for i, t := range m.tiles {
		t.bytes(b[i*tileSize:])
	}
	if err := writeBytes(f, b); err != nil {
		return err
	}
	m.log.Debug("wrote terrain map")
	return nil
}
