// Package config loads flag defaults from an optional TOML file in
// the XDG config directory. Command-line flags always override file
// values.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/jmcomets/fd/pkg/errors"
	"github.com/jmcomets/fd/pkg/logging"
)

var log = logging.GetLogger("config")

// Config holds the configurable search defaults. Field names mirror
// the long flag names.
type Config struct {
	CaseSensitive bool   `koanf:"case-sensitive" toml:"case-sensitive"`
	FullPath      bool   `koanf:"full-path" toml:"full-path"`
	Hidden        bool   `koanf:"hidden" toml:"hidden"`
	NoIgnore      bool   `koanf:"no-ignore" toml:"no-ignore"`
	Follow        bool   `koanf:"follow" toml:"follow"`
	AbsolutePath  bool   `koanf:"absolute-path" toml:"absolute-path"`
	NoColor       bool   `koanf:"no-color" toml:"no-color"`
	MaxDepth      int    `koanf:"max-depth" toml:"max-depth"`
	LsColors      string `koanf:"ls-colors" toml:"ls-colors"`
}

// Default returns the built-in defaults: smart case, basename search,
// hidden files and ignored files excluded, no depth limit. An empty
// LsColors means the LS_COLORS environment variable is consulted.
func Default() *Config {
	return &Config{}
}

// Path returns the location of the user config file.
func Path() string {
	return filepath.Join(xdg.ConfigHome, "fd", "config.toml")
}

// Load reads the user config file, if present, on top of the defaults.
// A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path := Path()
	if _, err := os.Stat(path); err != nil {
		log.Debug().Str("path", path).Msg("No config file, using defaults")
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config file %s", path)
	}

	log.Debug().Str("path", path).Msg("Loaded config file")
	return cfg, nil
}

// Generate renders the default configuration as TOML, suitable for
// writing to Path() as a starting point.
func Generate() ([]byte, error) {
	out, err := gotoml.Marshal(Default())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render default config")
	}
	return out, nil
}
