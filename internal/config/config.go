// Package config loads mktoc settings from flags, MKTOC_* environment
// variables and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/itsmostafa/mktoc/internal/toc"
)

// EnvPrefix is prepended to every environment variable, e.g. MKTOC_MIN_DEPTH.
const EnvPrefix = "MKTOC"

// DefaultFileName is looked up in the working directory and then $HOME.
const DefaultFileName = ".mktoc.yaml"

// Settings is the merged configuration for a mktoc invocation.
type Settings struct {
	MinDepth      int            `mapstructure:"min_depth" yaml:"min_depth"`
	MaxDepth      int            `mapstructure:"max_depth" yaml:"max_depth"`
	WrapInDetails bool           `mapstructure:"wrap_in_details" yaml:"wrap_in_details"`
	Server        ServerSettings `mapstructure:"server" yaml:"server"`
	Watch         WatchSettings  `mapstructure:"watch" yaml:"watch"`
}

// ServerSettings configures `mktoc serve`.
type ServerSettings struct {
	Addr         string `mapstructure:"addr" yaml:"addr"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

// WatchSettings configures `mktoc watch`.
type WatchSettings struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		MinDepth:      toc.DefaultMinDepth,
		MaxDepth:      toc.DefaultMaxDepth,
		WrapInDetails: false,
		Server: ServerSettings{
			Addr:         ":8080",
			MaxBodyBytes: 5 << 20,
		},
		Watch: WatchSettings{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// flagKeys maps settings keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"min_depth":       "min-depth",
	"max_depth":       "max-depth",
	"wrap_in_details": "wrap-in-details",
	"server.addr":     "addr",
	"watch.debounce":  "debounce",
}

// Load merges defaults, the config file, environment and flags, in that
// order of increasing precedence. cfgFile may be empty, in which case
// DefaultFileName is searched for and its absence is not an error. flags may
// be nil; flags missing from the set are skipped.
func Load(flags *pflag.FlagSet, cfgFile string) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("min_depth", defaults.MinDepth)
	v.SetDefault("max_depth", defaults.MaxDepth)
	v.SetDefault("wrap_in_details", defaults.WrapInDetails)
	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.max_body_bytes", defaults.Server.MaxBodyBytes)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &s, nil
}

// TOC returns the caller-side ToC configuration. Depth bounds are normalized
// later, when the document is resolved.
func (s *Settings) TOC() toc.Config {
	return toc.Config{
		MinDepth:      s.MinDepth,
		MaxDepth:      s.MaxDepth,
		WrapInDetails: s.WrapInDetails,
		StartComment:  toc.BeginComment,
	}
}

// WriteDefault writes the default settings as YAML to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# mktoc configuration
# Every key can be overridden with an MKTOC_ environment variable,
# e.g. MKTOC_MAX_DEPTH=3 or MKTOC_SERVER_ADDR=:9090.
# A JSON object in a document's BEGIN mktoc comment overrides these values.

`)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(header, data...)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
