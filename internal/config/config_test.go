package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/jlym/postboard/go/internal/config"
)

func newFlags(t *testing.T, v *viper.Viper, args ...string) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, config.BindFlags(v, flags))
	require.NoError(t, flags.Parse(args))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, &config.Config{
		Port:      config.DefaultPort,
		LogLevel:  config.DefaultLogLevel,
		LogFormat: config.DefaultLogFormat,
	}, cfg)
	require.Equal(t, ":8080", cfg.Addr())
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("NO_SEED", "true")

	v := viper.New()
	newFlags(t, v)
	cfg, err := config.Load(v, "")
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "json", cfg.LogFormat)
	require.True(t, cfg.NoSeed)
}

func TestLoadFlagsOverrideEnvironmentAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 6060\nlog_level: debug\nseed_file: seed.toml\n"), 0o644))
	t.Setenv("PORT", "9090")

	v := viper.New()
	newFlags(t, v, "--port", "7070")
	cfg, err := config.Load(v, path)
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "seed.toml", cfg.SeedFile)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")
	_, err := config.Load(viper.New(), "")
	require.ErrorContains(t, err, "invalid config")

	_, err = config.Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{Port: 0, LogLevel: "info", LogFormat: "text"}
	require.Error(t, cfg.Validate())

	cfg.Port = 80
	require.NoError(t, cfg.Validate())

	cfg.LogFormat = "xml"
	require.Error(t, cfg.Validate())
}
