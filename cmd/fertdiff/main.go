package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/badpandabear/MapCopy/civ2"
	"github.com/badpandabear/MapCopy/internal/config"
	"github.com/badpandabear/MapCopy/internal/logs"
)

const usage = `FertDiff Version 1.1
fertdiff [flags] file1 file2
  Compares the fertility of two Civ2 saved game files, and displays any
  differences.`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := pflag.NewFlagSet("fertdiff", pflag.ContinueOnError)
	fs.SetOutput(out)
	mapNum := fs.Int("map", 1, "map to compare in multi-map files (1-4)")
	config.AddFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(out, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 0
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(out, "Must specify two file names on command line.")
		return 1
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}
	log := logs.New("fertdiff", cfg.Log)
	defer log.Sync()
	if err := diff(fs.Arg(0), fs.Arg(1), *mapNum, cfg, log, out); err != nil {
		fmt.Fprintln(out, err)
		return 1
	}
	return 0
}

func diff(file1, file2 string, mapNum int, cfg config.Config, log *zap.Logger, out io.Writer) error {
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}
	var maps [2]*civ2.Map
	for i, file := range []string{file1, file2} {
		g := civ2.New(civ2.WithLogger(log), civ2.WithRules(rules))
		if err := g.Load(file); err != nil {
			return err
		}
		if maps[i], err = g.Map(mapNum - 1); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}

	diffs, err := civ2.DiffFertility(maps[0], maps[1])
	if err != nil {
		return err
	}
	for _, d := range diffs {
		fmt.Fprintf(out, "%d,%d %d,%d\n", d.X, d.Y, d.A, d.B)
	}
	fmt.Fprintf(out, "%d differences found.\n", len(diffs))
	log.Info("compared fertility",
		zap.String("tiles", humanize.Comma(int64(maps[0].Area()))),
		zap.Int("differences", len(diffs)))
	return nil
}
