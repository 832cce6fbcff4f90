package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ConfigName = "aoe4analyze"
	EnvPrefix  = "AOE4"
	// CacheFileName is the static data cache inside DataPath.
	CacheFileName = "staticData.json"
)

type Config struct {
	DataPath    string        `mapstructure:"data_path"`
	CacheMaxAge time.Duration `mapstructure:"cache_max_age"`

	UnitsURL        string `mapstructure:"units_url"`
	BuildingsURL    string `mapstructure:"buildings_url"`
	TechnologiesURL string `mapstructure:"technologies_url"`
	// SummaryURLTemplate takes the profile slug and the game id.
	SummaryURLTemplate string `mapstructure:"summary_url_template"`

	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
	FetchAttempts uint          `mapstructure:"fetch_attempts"`

	Debug bool `mapstructure:"debug"`
}

var defaults = map[string]any{
	"data_path":            "./data",
	"cache_max_age":        7 * 24 * time.Hour,
	"units_url":            "https://data.aoe4world.com/units/all.json",
	"buildings_url":        "https://data.aoe4world.com/buildings/all.json",
	"technologies_url":     "https://data.aoe4world.com/technologies/all.json",
	"summary_url_template": "https://aoe4world.com/players/%s/games/%d/summary",
	"http_timeout":         30 * time.Second,
	"fetch_attempts":       3,
	"debug":                false,
}

// DefaultConfig returns the built-in settings without reading any file or
// the environment.
func DefaultConfig() *Config {
	return &Config{
		DataPath:           defaults["data_path"].(string),
		CacheMaxAge:        defaults["cache_max_age"].(time.Duration),
		UnitsURL:           defaults["units_url"].(string),
		BuildingsURL:       defaults["buildings_url"].(string),
		TechnologiesURL:    defaults["technologies_url"].(string),
		SummaryURLTemplate: defaults["summary_url_template"].(string),
		HTTPTimeout:        defaults["http_timeout"].(time.Duration),
		FetchAttempts:      uint(defaults["fetch_attempts"].(int)),
	}
}

// Load layers a config file and AOE4_* environment variables over the
// defaults. A .env file in the working directory is read first. If path is
// empty, aoe4analyze.yaml is looked up in the working directory and in
// $HOME/.config/aoe4analyze; a missing file is not an error.
func (c *Config) Load(path string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("loaded config")
	}

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if c.FetchAttempts == 0 {
		c.FetchAttempts = 1
	}
	return nil
}

// CachePath is the location of the static data cache file.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataPath, CacheFileName)
}
