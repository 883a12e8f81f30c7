package config

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jlym/postboard/go/internal/logging"
)

// Keys double as environment variable names once upper-cased.
const (
	KeyPort      = "port"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeySeedFile  = "seed_file"
	KeyNoSeed    = "no_seed"
)

const (
	DefaultPort      = 8080
	DefaultLogLevel  = "info"
	DefaultLogFormat = logging.FormatText
)

type Config struct {
	Port      int
	LogLevel  string
	LogFormat string
	// SeedFile replaces the built-in seed when set.
	SeedFile string
	NoSeed   bool
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("port %d out of range", c.Port)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != logging.FormatText && c.LogFormat != logging.FormatJSON {
		return errors.Errorf("unknown log format \"%s\"", c.LogFormat)
	}
	return nil
}

// BindFlags registers the server flags on flags and binds them to v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.Int("port", DefaultPort, "port to listen on (env PORT)")
	flags.String("log-level", DefaultLogLevel, "debug, info, warn or error (env LOG_LEVEL)")
	flags.String("log-format", DefaultLogFormat, "text or json (env LOG_FORMAT)")
	flags.String("seed-file", "", "YAML or TOML file with initial users and posts (env SEED_FILE)")
	flags.Bool("no-seed", false, "start with no users or posts (env NO_SEED)")

	bindings := map[string]string{
		KeyPort:      "port",
		KeyLogLevel:  "log-level",
		KeyLogFormat: "log-format",
		KeySeedFile:  "seed-file",
		KeyNoSeed:    "no-seed",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return errors.Wrapf(err, "binding flag \"%s\" failed", flag)
		}
	}
	return nil
}

// Load resolves the configuration from defaults, the optional config file,
// the environment and any bound flags, in increasing order of precedence.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeySeedFile, "")
	v.SetDefault(KeyNoSeed, false)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file failed, path=\"%s\"", configFile)
		}
	}

	cfg := &Config{
		Port:      v.GetInt(KeyPort),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
		SeedFile:  v.GetString(KeySeedFile),
		NoSeed:    v.GetBool(KeyNoSeed),
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}
