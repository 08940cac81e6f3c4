package mapcopy

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/badpandabear/MapCopy/civ2"
)

const DefaultBackupSuffix = ".bak"

// Settings carries what Run needs besides the command line.
type Settings struct {
	Log          *zap.Logger
	Rules        *civ2.Rules
	BackupSuffix string
}

// LogLevel is the console level asked for by the verbose option, or base if
// that is lower.
func (o Options) LogLevel(base zapcore.Level) zapcore.Level {
	lvl := zapcore.WarnLevel
	switch o.Verbose {
	case On:
		lvl = zapcore.InfoLevel
	case Dev:
		lvl = zapcore.DebugLevel
	}
	return min(lvl, base)
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Backup copies path to path+suffix. A missing file has nothing to back up.
func Backup(path, suffix string, log *zap.Logger) error {
	in, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	defer in.Close()

	name := path + suffix
	out, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("backup %s to %s: %w", path, name, err)
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("backup %s to %s: %w", path, name, err)
	}
	log.Info("backed up file", zap.String("file", path), zap.String("backup", name), zap.String("size", humanize.Bytes(uint64(n))))
	return nil
}

func logDetails(log *zap.Logger, path string, g *civ2.SavedGame) {
	fields := []zap.Field{
		zap.String("file", path),
		zap.Int("width", g.Width()),
		zap.Int("height", g.Height()),
		zap.String("tiles", humanize.Comma(int64(g.Width()*g.Height()/2))),
	}
	if g.IsMapOnly() {
		log.Info("MP file", fields...)
		return
	}
	shape := "round"
	if g.IsFlatEarth() {
		shape = "flat"
	}
	log.Info("SAV/SCN file", append(fields,
		zap.Stringer("version", g.Version()),
		zap.String("earth", shape),
		zap.Int("maps", g.NumMaps()))...)
}

// Run carries out a parsed command line: back up the destination, load the
// files, copy and save the destination.
func Run(a *Args, s Settings) error {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	suffix := s.BackupSuffix
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}

	destExists, err := exists(a.Dest)
	if err != nil {
		return err
	}
	if a.Kind.InPlace() && !destExists {
		return fmt.Errorf("file %s must exist for in place modification", a.Dest)
	}
	if a.Options.Backup == On {
		if err := Backup(a.Dest, suffix, log); err != nil {
			return err
		}
	}

	newGame := func() *civ2.SavedGame {
		return civ2.New(civ2.WithLogger(log), civ2.WithRules(s.Rules))
	}
	dst := newGame()
	src := dst
	if !a.Kind.InPlace() {
		src = newGame()
		log.Info("loading file", zap.String("file", a.Source))
		if err := src.Load(a.Source); err != nil {
			return err
		}
		logDetails(log, a.Source, src)
	}

	switch {
	case destExists:
		log.Info("loading file", zap.String("file", a.Dest))
		if err := dst.Load(a.Dest); err != nil {
			return err
		}
		logDetails(log, a.Dest, dst)
	case civ2.IsMPFile(a.Dest):
		log.Info("creating MP file", zap.String("file", a.Dest))
		if err := dst.CreateMP(src.Width(), src.Height(), src.IsFlatEarth()); err != nil {
			return err
		}
	default:
		log.Info("creating SAV file", zap.String("file", a.Dest))
		if err := dst.CreateSAV(src.Width(), src.Height(), src.NumMaps()); err != nil {
			return fmt.Errorf("%s: %w", a.Dest, err)
		}
	}

	if err := CopyGame(src, dst, a, log); err != nil {
		return err
	}
	return dst.Save(a.Dest)
}
