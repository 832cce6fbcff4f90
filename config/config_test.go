package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaultConfig(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.DataPath, "./data")
	is.Equal(cfg.CacheMaxAge, 168*time.Hour)
	is.Equal(cfg.HTTPTimeout, 30*time.Second)
	is.Equal(cfg.FetchAttempts, uint(3))
	is.Equal(cfg.UnitsURL, "https://data.aoe4world.com/units/all.json")
	is.Equal(cfg.CachePath(), filepath.Join("data", "staticData.json"))
	is.True(!cfg.Debug)
}

func TestLoadFileAndEnv(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "aoe4analyze.yaml")
	err := os.WriteFile(path, []byte("data_path: /tmp/aoe4\ncache_max_age: 24h\ndebug: true\n"), 0o644)
	is.NoErr(err)
	t.Setenv("AOE4_FETCH_ATTEMPTS", "5")
	t.Setenv("AOE4_HTTP_TIMEOUT", "2s")

	cfg := &Config{}
	is.NoErr(cfg.Load(path))
	is.Equal(cfg.DataPath, "/tmp/aoe4")
	is.Equal(cfg.CacheMaxAge, 24*time.Hour)
	is.True(cfg.Debug)
	is.Equal(cfg.FetchAttempts, uint(5))
	is.Equal(cfg.HTTPTimeout, 2*time.Second)
	// untouched keys keep their defaults
	is.Equal(cfg.BuildingsURL, DefaultConfig().BuildingsURL)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	is.True(err != nil)
}

func TestLoadWithoutFile(t *testing.T) {
	is := is.New(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg := &Config{}
	is.NoErr(cfg.Load(""))
	is.Equal(*cfg, *DefaultConfig())
}
