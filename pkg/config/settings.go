package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every settings environment variable.
const EnvPrefix = "WINELOADER"

// Settings keys. Each maps to WINELOADER_<KEY> with dashes as underscores,
// and to a --<key> flag on the management CLI.
const (
	KeyConfig        = "config"
	KeyPrefer        = "prefer"
	KeyRequireConfig = "require-config"
	KeyLogLevel      = "log-level"
)

// Defaults for settings that are not set anywhere.
const (
	DefaultPrefer   = "system"
	DefaultLogLevel = "warn"
)

// Settings controls how the loader itself behaves.
type Settings struct {
	ConfigFile    string // resolver configuration file
	Prefer        string // "system" or "default" when no bottle decides
	RequireConfig bool   // a missing configuration file is fatal
	LogLevel      string
}

// NewViper returns a viper instance reading WINELOADER_* variables with
// defaults applied. Callers may bind CLI flags on top.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyConfig, "")
	v.SetDefault(KeyPrefer, DefaultPrefer)
	v.SetDefault(KeyRequireConfig, false)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	return v
}

// LoadSettings reads settings from v. An unset config path resolves to
// DefaultPath.
func LoadSettings(v *viper.Viper) (Settings, error) {
	s := Settings{
		ConfigFile:    v.GetString(KeyConfig),
		Prefer:        strings.ToLower(strings.TrimSpace(v.GetString(KeyPrefer))),
		RequireConfig: v.GetBool(KeyRequireConfig),
		LogLevel:      strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
	}

	if s.ConfigFile == "" {
		path, err := DefaultPath()
		if err != nil {
			return Settings{}, err
		}
		s.ConfigFile = path
	}
	return s, nil
}
