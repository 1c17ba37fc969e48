package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. LOCKER_API_BASE_URL.
const EnvPrefix = "LOCKER"

// Config is the application configuration
type Config struct {
	API      APIConfig      `mapstructure:"api" json:"api"`
	Reveal   RevealConfig   `mapstructure:"reveal" json:"reveal"`
	Fetch    FetchConfig    `mapstructure:"fetch" json:"fetch"`
	Retry    RetryConfig    `mapstructure:"retry" json:"retry"`
	History  HistoryConfig  `mapstructure:"history" json:"history"`
	Surprise SurpriseConfig `mapstructure:"surprise" json:"surprise"`

	// DataDir holds the database and logs
	DataDir string `mapstructure:"data_dir" json:"data_dir"`
}

// APIConfig holds upstream catalog settings
type APIConfig struct {
	BaseURL       string        `mapstructure:"base_url" json:"base_url"`
	Language      string        `mapstructure:"language" json:"language"`
	Timeout       time.Duration `mapstructure:"timeout" json:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second" json:"rate_per_second"` // 0 = unlimited
}

// RevealConfig holds list paging settings
type RevealConfig struct {
	PageSize  int           `mapstructure:"page_size" json:"page_size"`
	Cooldown  time.Duration `mapstructure:"cooldown" json:"cooldown"`
	Proximity int           `mapstructure:"proximity" json:"proximity"` // rows from the end that trigger a page; 0 uses the default
}

// FetchConfig holds catalog load settings
type FetchConfig struct {
	SlowAfter time.Duration `mapstructure:"slow_after" json:"slow_after"` // negative disables the notice
}

// RetryConfig holds the error countdown settings
type RetryConfig struct {
	Countdown time.Duration `mapstructure:"countdown" json:"countdown"`
	Auto      bool          `mapstructure:"auto" json:"auto"` // retry when the countdown hits zero
}

// HistoryConfig holds recent-search settings
type HistoryConfig struct {
	Debounce time.Duration `mapstructure:"debounce" json:"debounce"`
}

// SurpriseConfig holds the shuffle animation settings
type SurpriseConfig struct {
	Picks    int           `mapstructure:"picks" json:"picks"`
	Interval time.Duration `mapstructure:"interval" json:"interval"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:  "https://fortnite-api.com",
			Language: "en",
			Timeout:  30 * time.Second,
		},
		Reveal: RevealConfig{
			PageSize:  20,
			Cooldown:  300 * time.Millisecond,
			Proximity: 3,
		},
		Fetch: FetchConfig{
			SlowAfter: 15 * time.Second,
		},
		Retry: RetryConfig{
			Countdown: 15 * time.Second,
			Auto:      true,
		},
		History: HistoryConfig{
			Debounce: time.Second,
		},
		Surprise: SurpriseConfig{
			Picks:    10,
			Interval: 50 * time.Millisecond,
		},
		DataDir: DefaultDataDir(),
	}
}

// DefaultDataDir returns ~/.locker
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".locker")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.json")
}

// DBPath returns the database file inside the data directory
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "locker.db")
}

// New returns a viper instance with every key defaulted and environment
// overrides enabled. Callers may bind flags to it before Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.language", d.API.Language)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.rate_per_second", d.API.RatePerSecond)
	v.SetDefault("reveal.page_size", d.Reveal.PageSize)
	v.SetDefault("reveal.cooldown", d.Reveal.Cooldown)
	v.SetDefault("reveal.proximity", d.Reveal.Proximity)
	v.SetDefault("fetch.slow_after", d.Fetch.SlowAfter)
	v.SetDefault("retry.countdown", d.Retry.Countdown)
	v.SetDefault("retry.auto", d.Retry.Auto)
	v.SetDefault("history.debounce", d.History.Debounce)
	v.SetDefault("surprise.picks", d.Surprise.Picks)
	v.SetDefault("surprise.interval", d.Surprise.Interval)
	v.SetDefault("data_dir", d.DataDir)
}

// Load reads the config file at path into v and decodes the result.
// A missing file is not an error: defaults and environment still apply.
// An empty path means ConfigPath().
func Load(v *viper.Viper, path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

// normalize replaces nonsensical values with defaults
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.Language == "" {
		c.API.Language = d.API.Language
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = d.API.Timeout
	}
	if c.Reveal.PageSize <= 0 {
		c.Reveal.PageSize = d.Reveal.PageSize
	}
	if c.Reveal.Cooldown <= 0 {
		c.Reveal.Cooldown = d.Reveal.Cooldown
	}
	if c.Reveal.Proximity <= 0 {
		c.Reveal.Proximity = d.Reveal.Proximity
	}
	if c.Fetch.SlowAfter == 0 {
		c.Fetch.SlowAfter = d.Fetch.SlowAfter
	}
	if c.Retry.Countdown < time.Second {
		c.Retry.Countdown = d.Retry.Countdown
	}
	if c.History.Debounce <= 0 {
		c.History.Debounce = d.History.Debounce
	}
	if c.Surprise.Picks <= 0 {
		c.Surprise.Picks = d.Surprise.Picks
	}
	if c.Surprise.Interval <= 0 {
		c.Surprise.Interval = d.Surprise.Interval
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
}

// Save writes config to path as JSON
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
