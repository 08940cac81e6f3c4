package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/badpandabear/MapCopy/internal/config"
	"github.com/badpandabear/MapCopy/internal/logs"
	"github.com/badpandabear/MapCopy/internal/mapcopy"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func printError(out io.Writer, err error) {
	fmt.Fprintln(out, err)
	fmt.Fprintln(out, `Type "mapcopy /?" or see the readme.txt file for help.`)
}

// run returns the exit code: 0 on success or when help was asked for.
func run(args []string, out io.Writer) int {
	// Options use +x/-x, so settings come from the config file and
	// MAPCOPY_* variables only.
	cfg, err := config.Load(nil)
	if err != nil {
		printError(out, err)
		return 1
	}

	a, err := mapcopy.ParseArgs(args, mapcopy.BackupByDefault(cfg.Backup.Enabled))
	switch {
	case errors.Is(err, mapcopy.ErrHelp):
		fmt.Fprintln(out, mapcopy.Version)
		fmt.Fprintln(out, mapcopy.Help)
		return 0
	case errors.Is(err, mapcopy.ErrVersion):
		fmt.Fprintln(out, mapcopy.Version)
		return 0
	case err != nil:
		printError(out, err)
		return 1
	}

	base := zapcore.WarnLevel
	levelErr := base.UnmarshalText([]byte(strings.ToLower(cfg.Log.Level)))
	if levelErr != nil {
		base = zapcore.WarnLevel
	}
	configured := cfg.Log.Level
	cfg.Log.Level = a.Options.LogLevel(base).String()
	cfg.Log.Dev = cfg.Log.Dev || a.Options.Verbose == mapcopy.Dev
	log := logs.New("mapcopy", cfg.Log)
	defer log.Sync()
	if levelErr != nil {
		log.Warn("unknown log level in config, using warn", zap.String("configured", configured), zap.Error(levelErr))
	}

	rules, err := cfg.Rules()
	if err != nil {
		printError(out, err)
		return 1
	}
	log.Debug("starting copy",
		zap.String("source", a.Source),
		zap.String("dest", a.Dest),
		zap.Stringer("kind", a.Kind))

	err = mapcopy.Run(a, mapcopy.Settings{
		Log:          log,
		Rules:        rules,
		BackupSuffix: cfg.Backup.Suffix,
	})
	if err != nil {
		log.Debug("copy failed", zap.Error(err))
		printError(out, err)
		return 1
	}
	return 0
}
