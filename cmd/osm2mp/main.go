package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/badpandabear/MapCopy/civ2"
	"github.com/badpandabear/MapCopy/internal/config"
	"github.com/badpandabear/MapCopy/internal/logs"
	"github.com/badpandabear/MapCopy/internal/osmimport"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func openScanner(ctx context.Context, in io.Reader, name string) osm.Scanner {
	if strings.EqualFold(filepath.Ext(name), ".pbf") {
		s := osmpbf.New(ctx, in, runtime.GOMAXPROCS(0))
		s.SkipRelations = true
		return s
	}
	return osmxml.New(ctx, in)
}

func run(args []string, out io.Writer) int {
	fs := pflag.NewFlagSet("osm2mp", pflag.ContinueOnError)
	fs.SetOutput(out)
	size := fs.Float64("size", 1, "size of the map in degrees")
	width := fs.Int("width", 70, "map width in tiles (even)")
	height := fs.Int("height", 100, "map height in tiles")
	flat := fs.Bool("flat", true, "flat earth map")
	base := fs.String("base", "grassland", "terrain of land without a matching tag")
	places := fs.StringSlice("places", osmimport.DefaultPlaces, "place=* values that become civilization start positions")
	config.AddFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(out, "Usage: osm2mp [flags] INFILE OUTFILE.mp LATITUDE LONGITUDE")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() != 4 {
		fs.Usage()
		return 1
	}
	lat, errLat := strconv.ParseFloat(fs.Arg(2), 64)
	lon, errLon := strconv.ParseFloat(fs.Arg(3), 64)
	baseTerrain, errBase := civ2.ParseTerrainType(*base)
	if err := errors.Join(errLat, errLon, errBase); err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}
	log := logs.New("osm2mp", cfg.Log)
	defer log.Sync()
	rules, err := cfg.Rules()
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	opts := osmimport.Options{
		Width:  *width,
		Height: *height,
		Flat:   *flat,
		Bound:  osmimport.BoundAround(lat, lon, *size),
		Base:   baseTerrain,
		Places: *places,
		Rules:  rules,
		Log:    log,
	}
	if err := convert(fs.Arg(0), fs.Arg(1), opts, log); err != nil {
		fmt.Fprintln(out, err)
		return 1
	}
	return 0
}

func convert(inFile, outFile string, opts osmimport.Options, log *zap.Logger) error {
	if !civ2.IsMPFile(outFile) {
		return fmt.Errorf("%s: output must be a .mp file", outFile)
	}
	in, err := os.Open(inFile)
	if err != nil {
		return err
	}
	defer in.Close()

	s := openScanner(context.Background(), in, inFile)
	defer s.Close()
	g, err := osmimport.Import(s, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", inFile, err)
	}
	if err := g.Save(outFile); err != nil {
		return err
	}
	if fi, err := os.Stat(outFile); err == nil {
		log.Info("wrote map", zap.String("file", outFile), zap.String("size", humanize.Bytes(uint64(fi.Size()))))
	}
	return nil
}
