package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/archsketch/archsketch/pkg/errors"
)

// defaultConfigFile is the config file looked up in the working directory
// when --config is not given.
const defaultConfigFile = "archsketch.toml"

// Config holds file-based defaults for the generate command.
// Flags override config values; config values override built-in defaults.
type Config struct {
	// OutDir is the artifact output directory.
	OutDir string `toml:"out_dir"`

	// Formats lists the artifact formats to produce (png, svg, dot).
	Formats []string `toml:"formats"`

	// Timeout bounds each rendering pass, e.g. "30s".
	Timeout duration `toml:"timeout"`

	// AssetDirs lists directories searched for icon files.
	AssetDirs []string `toml:"asset_dirs"`

	// Open requests opening the first artifact after rendering.
	Open bool `toml:"open"`
}

// duration wraps time.Duration so TOML values parse from strings like "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// loadConfig reads the config file at path. When path is empty the default
// file is tried; a missing default file yields a zero config, while an
// explicitly named file must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "load config %s", path)
	}
	return cfg, nil
}
