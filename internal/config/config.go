// Package config resolves runtime settings from built-in defaults, an
// optional .streetleaves.toml file, STREETLEAVES_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Setup.
const EnvPrefix = "STREETLEAVES"

// Config holds all runtime configuration.
type Config struct {
	Locations string   `mapstructure:"locations"`
	Shapes    string   `mapstructure:"shapes"`
	Palette   string   `mapstructure:"palette"`
	Out       string   `mapstructure:"out"`
	Templates string   `mapstructure:"templates"`
	Pages     []string `mapstructure:"pages"`
	Verbose   bool     `mapstructure:"verbose"`
	LogFile   string   `mapstructure:"log_file"`
}

// Setup points v at the config file and the environment and reads the file.
// A missing default config file is not an error; a missing explicit one is.
func Setup(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".streetleaves")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// Load reads configuration from v, applying built-in defaults for any values
// not set by config file, environment, or flags.
func Load(v *viper.Viper) (Config, error) {
	v.SetDefault("locations", "street_color_shapes.json")
	v.SetDefault("shapes", "shapes.json")
	v.SetDefault("palette", "")
	v.SetDefault("out", "output")
	v.SetDefault("templates", "")
	v.SetDefault("pages", []string{})
	v.SetDefault("verbose", false)
	v.SetDefault("log_file", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
