package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Telegram TelegramConfig `yaml:"telegram"`
	Feeds    FeedsConfig    `yaml:"feeds"`
	Events   EventsConfig   `yaml:"events"`
	Cron     CronConfig     `yaml:"cron"`
	Timezone string         `yaml:"timezone"` // target timezone for published timestamps
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type TelegramConfig struct {
	Token     string `yaml:"token"`
	ChannelID int64  `yaml:"channel_id"`
}

type FeedsConfig struct {
	URLs            []string `yaml:"urls"`
	ArticlesPerFeed int      `yaml:"articles_per_feed"`
	MaxAgeDays      int      `yaml:"max_age_days"`          // freshness window
	FetchTimeoutSec int      `yaml:"fetch_timeout_seconds"` // per-feed fetch timeout
}

type EventsConfig struct {
	PageURL         string `yaml:"page_url"`
	RetentionDays   int    `yaml:"retention_days"`
	FetchTimeoutSec int    `yaml:"fetch_timeout_seconds"`
}

type CronConfig struct {
	FetchInterval  string `yaml:"fetch_interval"`  // fetch + publish cycle
	EventsInterval string `yaml:"events_interval"` // event store refresh
	DigestInterval string `yaml:"digest_interval"` // upcoming-events digest
}

// Load reads the config file, falling back to defaults when it is missing.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: "3000",
			Mode: "release",
		},
		Database: DatabaseConfig{
			Path: "data/hotnews.db",
		},
		Feeds: FeedsConfig{
			ArticlesPerFeed: 10,
			MaxAgeDays:      7,
			FetchTimeoutSec: 10,
		},
		Events: EventsConfig{
			PageURL:         "https://www.imdb.com/calendar/",
			RetentionDays:   30,
			FetchTimeoutSec: 10,
		},
		Cron: CronConfig{
			FetchInterval:  "*/30 * * * *", // every 30 minutes
			EventsInterval: "0 6 * * *",    // daily at 06:00
			DigestInterval: "0 10 * * 1",   // Monday mornings
		},
		Timezone: "Europe/Moscow",
	}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else {
		log.Printf("Config file not found: %s, using defaults", configPath)
	}

	// Environment overrides
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}

	if channel := os.Getenv("TELEGRAM_CHANNEL_ID"); channel != "" {
		id, err := strconv.ParseInt(channel, 10, 64)
		if err == nil {
			cfg.Telegram.ChannelID = id
		} else {
			log.Printf("Invalid TELEGRAM_CHANNEL_ID: %s", channel)
		}
	}

	return cfg, nil
}

// MaxArticleAge is the freshness window as a duration.
func (c FeedsConfig) MaxArticleAge() time.Duration {
	return time.Duration(c.MaxAgeDays) * 24 * time.Hour
}

func (c FeedsConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

func (c EventsConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

// GetServerAddress returns the listen address.
func (c *Config) GetServerAddress() string {
	if _, err := strconv.Atoi(c.Server.Port); err == nil {
		return ":" + c.Server.Port
	}
	return c.Server.Port
}
