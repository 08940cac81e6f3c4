package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/badpandabear/MapCopy/civ2"
)

const (
	EnvPrefix  = "MAPCOPY"
	configName = "mapcopy"
)

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
	Level      string `mapstructure:"level"` // debug/info/warn/error
	Dev        bool   `mapstructure:"dev"`
}

type BackupConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Suffix  string `mapstructure:"suffix"`
}

type Config struct {
	Log       LogConfig    `mapstructure:"log"`
	Backup    BackupConfig `mapstructure:"backup"`
	RulesFile string       `mapstructure:"rules_file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.dev", false)
	v.SetDefault("backup.enabled", true)
	v.SetDefault("backup.suffix", ".bak")
	v.SetDefault("rules_file", "")
}

// AddFlags registers the flags understood by Load.
func AddFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default ./mapcopy.yaml or ~/.config/mapcopy/mapcopy.yaml)")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("log-file", "", "also write JSON logs to this file")
	fs.String("rules", "", "YAML file with terrain rule overrides")
}

var flagKeys = map[string]string{
	"config":    "config",
	"log-level": "log.level",
	"log-file":  "log.file",
	"rules":     "rules_file",
}

// Load reads defaults, then the config file, then MAPCOPY_* environment
// variables, then the flags of fs that were set. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// Rules returns the terrain rules named by rules_file, or the built-in ones
// when it is empty.
func (c Config) Rules() (*civ2.Rules, error) {
	if c.RulesFile == "" {
		return civ2.DefaultRules(), nil
	}
	f, err := os.Open(c.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	defer f.Close()
	r, err := civ2.LoadRules(f)
	if err != nil {
		return nil, fmt.Errorf("rules %s: %w", c.RulesFile, err)
	}
	return r, nil
}
