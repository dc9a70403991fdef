package config

import (
	"time"

	"golang-trade-journal/pkg/common"
	"golang-trade-journal/pkg/config"
)

// Journal holds journal-specific configuration.
type Journal struct {
	// Workspaces lists the enabled workspace keys. Empty enables all built-in workspaces.
	Workspaces          []string      `mapstructure:"workspaces"`
	TimeZone            string        `mapstructure:"time_zone"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
	ApprovalTTL         time.Duration `mapstructure:"approval_ttl"`
	RecentBalanceLimit  int           `mapstructure:"recent_balance_limit"`
	ChecklistStatsLimit int           `mapstructure:"checklist_stats_limit"`
}

// Cache holds cache backend configuration.
type Cache struct {
	Driver          string        `mapstructure:"driver"` // memory or redis
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// Digest holds the scheduled journal digest configuration.
type Digest struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
}

// Config holds the full configuration for the journal service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Telegram config.Telegram `mapstructure:"telegram"`
	Journal  Journal         `mapstructure:"journal"`
	Cache    Cache           `mapstructure:"cache"`
	Digest   Digest          `mapstructure:"digest"`
}

// Load loads the journal configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Journal.TimeZone == "" {
		c.Journal.TimeZone = "UTC"
	}
	if c.Journal.CacheTTL == 0 {
		c.Journal.CacheTTL = 5 * time.Minute
	}
	if c.Journal.ApprovalTTL == 0 {
		c.Journal.ApprovalTTL = 15 * time.Minute
	}
	if c.Journal.RecentBalanceLimit == 0 {
		c.Journal.RecentBalanceLimit = common.DefaultRecentLimit
	}
	if c.Journal.ChecklistStatsLimit == 0 {
		c.Journal.ChecklistStatsLimit = common.DefaultStatsLimit
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Digest.Cron == "" {
		c.Digest.Cron = common.DefaultDigestCron
	}
	if c.Telegram.MaxMessagePerMinute == 0 {
		c.Telegram.MaxMessagePerMinute = common.DefaultTelegramRate
	}
}
