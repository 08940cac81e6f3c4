package mapcopy

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	Version = "MapCopy Version 1.2"

	// Map selections for Args.SourceMap and Args.DestMap besides 1..4.
	AllMaps    = 0
	DefaultMap = -1
)

const Help = `mapcopy [source] dest [ options ]
  Copies the Civ2 map from file "source" to file "dest".
  Without a source, dest is modified in place.
  Options: (+x turns option x on. -x turns option x off.)
    s[eed]          Copies the resource seed.
    t[errain]       Copies the terrain data.
    i[mprovement]   Copies terrain improvements.
    v[isibility]    Copies terrain visibility.
    o[wnership]     Copies terrain ownership.
    rs[:SET|:CLEAR] Copies or sets resource suppression.
    cs              Copies civilization start locations from an MP file.
    bc              Copies "body counter" values for continents.
    cr              Copies "city radius" data for terrain.
    verb[ose][:DEV] Enables informative messages. Using 'DEV' results
                    in a very verbose output meant for debugging mapcopy.
    b[ackup]        Creates a backup named "dest.bak". (on by default)
    /? or -h        Displays this help screen.
    f[ertility][:CALC|CALCALL|ADJUST|ZERO]
                    Copies or calculates fertility data for terrain.
    cv[:CURRENT]    Copies civ specific visible terrain improvement data.
    sm:n or sm:ALL  Picks which map in a multi-map ToT file to copy from.
    dm:n or dm:ALL  Picks which map in a multi-map ToT file to copy to.`

var (
	// ErrHelp and ErrVersion ask for the help or version text instead of a
	// copy. They are not failures.
	ErrHelp    = errors.New("help requested")
	ErrVersion = errors.New("version requested")

	ErrInvalidOption = errors.New("invalid option")
)

var helpArgs = []string{"/?", "-?", "-h", "+h", "-help", "--help"}

// Args is a parsed mapcopy command line.
type Args struct {
	Source  string // empty when Dest is modified in place
	Dest    string
	Kind    Kind
	Options Options

	// 1..4, AllMaps or DefaultMap.
	SourceMap int
	DestMap   int
}

// ParseOption changes the defaults before the command line options apply.
type ParseOption func(*Options)

// BackupByDefault sets whether the destination is backed up unless +b or -b
// says otherwise.
func BackupByDefault(b bool) ParseOption {
	return func(o *Options) {
		if b {
			o.Backup = On
		} else {
			o.Backup = Off
		}
	}
}

func isOption(s string) bool {
	return strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")
}

func invalidOption(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOption, fmt.Sprintf(format, args...))
}

// ParseArgs parses "source [dest] [+/-option ...]", without the program name.
func ParseArgs(args []string, opts ...ParseOption) (*Args, error) {
	if len(args) == 0 {
		return nil, ErrHelp
	}
	for _, s := range args {
		if slices.Contains(helpArgs, strings.ToLower(s)) {
			return nil, ErrHelp
		}
		if strings.EqualFold(s, "--version") {
			return nil, ErrVersion
		}
	}
	if isOption(args[0]) {
		return nil, invalidOption("missing file name before %s", args[0])
	}

	a := &Args{SourceMap: DefaultMap, DestMap: DefaultMap}
	rest := args[1:]
	if len(rest) > 0 && !isOption(rest[0]) {
		a.Source, a.Dest = args[0], rest[0]
		rest = rest[1:]
	} else {
		a.Dest = args[0]
	}
	a.Kind = KindOf(a.Source, a.Dest)
	a.Options = Defaults(a.Kind)
	for _, o := range opts {
		o(&a.Options)
	}

	for _, s := range rest {
		if err := a.parseOption(s); err != nil {
			return nil, err
		}
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Args) parseOption(s string) error {
	if len(s) < 2 || !isOption(s) {
		return invalidOption("%q", s)
	}
	value := On
	if s[0] == '-' {
		value = Off
	}
	o := strings.ToLower(s[1:])
	opt := &a.Options

	switch {
	case o == "s" || o == "seed":
		opt.Seed = value
	case o == "t" || o == "terrain":
		opt.Terrain = value
	case o == "i" || o == "improvement":
		opt.Improvements = value
	case o == "v" || o == "visibility":
		opt.Visibility = value
	case o == "o" || o == "ownership":
		opt.Ownership = value
	case o == "cs":
		opt.CivStart = value
	case o == "bc":
		opt.BodyCounter = value
	case o == "cr":
		opt.CityRadius = value
	case strings.HasPrefix(o, "verb"):
		if strings.HasSuffix(o, ":dev") {
			opt.Verbose = Dev
		} else {
			opt.Verbose = value
		}
	case o == "b" || o == "backup":
		opt.Backup = value
	case o == "cv":
		opt.CivView = value
	case o == "cv:current":
		opt.CivView = Current
	case o == "f" || o == "fertility":
		opt.Fertility = value
	case strings.HasPrefix(o, "f:") || strings.HasPrefix(o, "fertility:"):
		switch o[strings.IndexByte(o, ':'):] {
		case ":calc":
			opt.Fertility = Calc
		case ":calcall":
			opt.Fertility = CalcAll
		case ":adjust":
			opt.Fertility = Adjust
		case ":zero":
			opt.Fertility = Zero
		default:
			return invalidOption("unknown option %s", o)
		}
	case o == "rs":
		opt.ResourceHidden = value
	case o == "rs:set":
		opt.ResourceHidden = Set
	case o == "rs:clear":
		opt.ResourceHidden = Clear
	case strings.HasPrefix(o, "sm:") || strings.HasPrefix(o, "dm:"):
		n, err := parseMapNumber(o)
		if err != nil {
			return err
		}
		if o[0] == 's' {
			a.SourceMap = n
		} else {
			a.DestMap = n
		}
	default:
		return invalidOption("unknown option %s", o)
	}
	return nil
}

func parseMapNumber(o string) (int, error) {
	v := o[3:]
	if v == "all" {
		return AllMaps, nil
	}
	if v == "" {
		return 0, invalidOption("missing map # for option %s", o)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 4 {
		return 0, invalidOption("invalid map # for option %s", o)
	}
	return n, nil
}

// check rejects option combinations that cannot work for the kind of copy.
// Whether the files exist is left to Run.
func (a *Args) check() error {
	k := a.Kind
	if a.SourceMap > 1 && k.SourceIsMP() {
		return invalidOption("source map %d: MP files only have one map", a.SourceMap)
	}
	if a.DestMap != 1 && a.DestMap != DefaultMap && k.DestIsMP() {
		return invalidOption("dest map: MP files only have one map")
	}
	if a.SourceMap == AllMaps && a.DestMap != AllMaps && a.DestMap != DefaultMap {
		return invalidOption("cannot copy all maps to a single map")
	}
	if a.Options.CivStart != Off && k != MPToMP {
		return invalidOption("cs: can only copy starting positions between .mp files")
	}
	if a.Options.CivView == Copy && k != SAVToSAV {
		return invalidOption("cv: can only copy civ view data between saved games")
	}
	if a.Options.CivView == Current && k != MPToSAV && k != SAVToSAV && k != InPlaceSAV {
		return invalidOption("cv:current: can only calculate civ view data for saved game destinations")
	}
	return nil
}

// selectMaps resolves DefaultMap once both files are loaded. Two multi-map
// files copy all maps onto all maps unless a single map was named.
func selectMaps(sm, dm int, srcMulti, dstMulti bool) (int, int) {
	if srcMulti && dstMulti && (sm == DefaultMap || sm == AllMaps) && (dm == DefaultMap || dm == AllMaps) {
		return AllMaps, AllMaps
	}
	if sm == DefaultMap {
		sm = 1
	}
	if dm == DefaultMap {
		dm = 1
	}
	return sm, dm
}
