package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/julienpequegnot/polypulse/internal/market"
	"github.com/julienpequegnot/polypulse/internal/relevance"
)

type Config struct {
	Feeds    []Feed           `yaml:"feeds"`
	Markets  MarketsConfig    `yaml:"markets"`
	Fetch    FetchConfig      `yaml:"fetch"`
	Matching relevance.Config `yaml:"matching"`
	Daemon   DaemonConfig     `yaml:"daemon"`
	Log      LogConfig        `yaml:"log"`
}

// Feed seeds the feeds table on init. A URL containing {query} is a search
// feed.
type Feed struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

type MarketsConfig struct {
	PolymarketURL string `yaml:"polymarket_url"`
	KalshiURL     string `yaml:"kalshi_url"`
	Limit         int    `yaml:"limit"`
}

type FetchConfig struct {
	Concurrency    int    `yaml:"concurrency"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
	NewsLimit      int    `yaml:"news_limit"`
}

type DaemonConfig struct {
	IntervalMinutes int `yaml:"interval_minutes"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultFeeds() []Feed {
	return []Feed{
		{Name: "Google News", URL: "https://news.google.com/rss/search?q={query}&hl=en-US&gl=US&ceid=US:en", Category: "general"},
		{Name: "Yahoo Finance", URL: "https://finance.yahoo.com/news/rssindex", Category: "general"},
		{Name: "CoinDesk", URL: "https://www.coindesk.com/arc/outboundfeeds/rss/", Category: "crypto"},
		{Name: "CoinTelegraph", URL: "https://cointelegraph.com/rss", Category: "crypto"},
		{Name: "TechCrunch", URL: "https://techcrunch.com/feed/", Category: "tech"},
	}
}

func Default() *Config {
	return &Config{
		Feeds: DefaultFeeds(),
		Markets: MarketsConfig{
			PolymarketURL: market.DefaultPolymarketURL,
			KalshiURL:     market.DefaultKalshiURL,
			Limit:         1000,
		},
		Fetch: FetchConfig{
			Concurrency:    5,
			TimeoutSeconds: 10,
			UserAgent:      "polypulse/1.0",
			NewsLimit:      30,
		},
		Matching: relevance.DefaultConfig(),
		Daemon: DaemonConfig{
			IntervalMinutes: 15,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate rejects settings the fetch and match pipeline cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Markets.Limit <= 0:
		return fmt.Errorf("markets.limit must be positive")
	case c.Fetch.Concurrency <= 0:
		return fmt.Errorf("fetch.concurrency must be positive")
	case c.Fetch.TimeoutSeconds <= 0:
		return fmt.Errorf("fetch.timeout_seconds must be positive")
	case c.Fetch.NewsLimit < 0:
		return fmt.Errorf("fetch.news_limit cannot be negative")
	case c.Daemon.IntervalMinutes <= 0:
		return fmt.Errorf("daemon.interval_minutes must be positive")
	case c.Log.Format != "json" && c.Log.Format != "console":
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	for i, f := range c.Feeds {
		if f.URL == "" || f.Name == "" {
			return fmt.Errorf("feeds[%d]: name and url are required", i)
		}
	}
	if err := c.Matching.Validate(); err != nil {
		return fmt.Errorf("matching: %w", err)
	}
	return nil
}

func Dir() string {
	if dir := os.Getenv("POLYPULSE_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".polypulse")
}

func DBPath() string {
	return filepath.Join(Dir(), "polypulse.db")
}

func configPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads config.yaml, falling back to defaults for a missing file or
// missing keys.
func Load() (*Config, error) {
	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath(), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0644)
}
