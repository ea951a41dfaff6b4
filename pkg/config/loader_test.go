package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/config"
)

type testConfigDefault struct {
	Driver  string        `env:"TEST_STORE_DRIVER" envDefault:"memory"`
	Size    int           `env:"TEST_CACHE_SIZE" envDefault:"1024"`
	TTL     time.Duration `env:"TEST_CACHE_TTL" envDefault:"1m"`
	Enabled bool          `env:"TEST_CACHE_ENABLED" envDefault:"true"`
}

type testConfigOverride struct {
	Driver string `env:"TEST_OVERRIDE_DRIVER" envDefault:"memory"`
	Size   int    `env:"TEST_OVERRIDE_SIZE" envDefault:"1"`
}

type testConfigCached struct {
	Value string `env:"TEST_CACHED_VALUE" envDefault:"first"`
}

type testConfigRequired struct {
	URL string `env:"TEST_REQUIRED_URL,required"`
}

type testConfigFile struct {
	Name string `env:"TEST_FILE_NAME"`
}

func TestLoad_DefaultValues(t *testing.T) {
	config.ResetCache()

	var cfg testConfigDefault
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "memory", cfg.Driver)
	assert.Equal(t, 1024, cfg.Size)
	assert.Equal(t, time.Minute, cfg.TTL)
	assert.True(t, cfg.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_OVERRIDE_DRIVER", "postgres")
	t.Setenv("TEST_OVERRIDE_SIZE", "64")

	var cfg testConfigOverride
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, 64, cfg.Size)
}

func TestLoad_CachesPerType(t *testing.T) {
	config.ResetCache()

	var first testConfigCached
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("TEST_CACHED_VALUE", "second")

	var second testConfigCached
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value, "cached value must be returned")

	config.ResetCache()
	var third testConfigCached
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Value)
}

func TestLoad_MissingRequired(t *testing.T) {
	config.ResetCache()
	os.Unsetenv("TEST_REQUIRED_URL")

	var cfg testConfigRequired
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *testConfigDefault
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	os.Unsetenv("TEST_FILE_NAME")
	t.Cleanup(func() { os.Unsetenv("TEST_FILE_NAME") })

	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("TEST_FILE_NAME=from-file\n"), 0o600))

	require.NoError(t, config.LoadEnv(path))

	var cfg testConfigFile
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Name)

	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
