package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/badpandabear/MapCopy/civ2"
	"github.com/badpandabear/MapCopy/internal/config"
	"github.com/badpandabear/MapCopy/internal/logs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := pflag.NewFlagSet("getfert", pflag.ContinueOnError)
	fs.SetOutput(out)
	mapNum := fs.Int("map", 1, "map to read in multi-map files (1-4)")
	config.AddFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(out, "getfert [flags] <file> <x> <y> (in civ2 coords)")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(out, "Need three and only three arguments.")
		fs.Usage()
		return 1
	}
	x, errX := strconv.Atoi(fs.Arg(1))
	y, errY := strconv.Atoi(fs.Arg(2))
	if err := errors.Join(errX, errY); err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}
	log := logs.New("getfert", cfg.Log)
	defer log.Sync()
	rules, err := cfg.Rules()
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	g := civ2.New(civ2.WithLogger(log), civ2.WithRules(rules))
	if err := g.Load(fs.Arg(0)); err != nil {
		fmt.Fprintln(out, err)
		return 1
	}
	if x < 0 || x >= g.Width() {
		fmt.Fprintf(out, "X Value: %d is invalid\n", x)
		return 1
	}
	if y < 0 || y >= g.Height() {
		fmt.Fprintf(out, "Y Value: %d is invalid\n", y)
		return 1
	}
	m, err := g.Map(*mapNum - 1)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}
	f, err := m.Fertility(x, y)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}
	fmt.Fprintf(out, "Fertility is: %x\n", f)
	return 0
}
