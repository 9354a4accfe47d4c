package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr       string `yaml:"addr"`
		CronSecret string `yaml:"cron_secret"`
	} `yaml:"server"`
	Providers struct {
		PolygonAPIKey string `yaml:"polygon_api_key"`
		FinnhubAPIKey string `yaml:"finnhub_api_key"`
		NewsAPIKey    string `yaml:"news_api_key"`
		YahooEnabled  bool   `yaml:"yahoo_enabled"`
	} `yaml:"providers"`
	Universe struct {
		Tickers   []string `yaml:"tickers"`
		Benchmark string   `yaml:"benchmark"`
		NewsLimit int      `yaml:"news_limit"`
	} `yaml:"universe"`
	Schedule struct {
		WrapCron string `yaml:"wrap_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

var defaultUniverse = []string{
	"SPY", "QQQ", "AAPL", "MSFT", "GOOGL", "AMZN", "META", "NVDA", "TSLA", "AMD",
	"INTC", "CRM", "ADBE", "NFLX", "PYPL", "UBER", "COIN", "SHOP", "SQ", "PLTR",
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("CRON_SECRET"); v != "" {
		cfg.Server.CronSecret = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.Providers.PolygonAPIKey = v
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Providers.FinnhubAPIKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.Providers.NewsAPIKey = v
	}
	if v := os.Getenv("YAHOO_ENABLED"); v != "" {
		cfg.Providers.YahooEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("STOCK_UNIVERSE"); v != "" {
		cfg.Universe.Tickers = splitTickers(v)
	}
	if v := os.Getenv("BENCHMARK_TICKER"); v != "" {
		cfg.Universe.Benchmark = v
	}
	if v := os.Getenv("NEWS_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Universe.NewsLimit = n
		}
	}
	if v := os.Getenv("CRON_WRAP"); v != "" {
		cfg.Schedule.WrapCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if len(cfg.Universe.Tickers) == 0 {
		cfg.Universe.Tickers = append([]string(nil), defaultUniverse...)
	}
	if cfg.Universe.Benchmark == "" {
		cfg.Universe.Benchmark = "SPY"
	}
	if cfg.Universe.NewsLimit == 0 {
		cfg.Universe.NewsLimit = 10
	}
	if cfg.Schedule.WrapCron == "" {
		// Every minute of the wrap window; the runner dedupes.
		cfg.Schedule.WrapCron = "0 5-25 13 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/marketwrap.db"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Universe.Tickers) == 0 {
		return fmt.Errorf("universe.tickers must not be empty")
	}
	if c.Universe.Benchmark == "" {
		return fmt.Errorf("universe.benchmark is required")
	}
	if c.Universe.NewsLimit < 0 {
		return fmt.Errorf("universe.news_limit must not be negative")
	}
	return nil
}

func splitTickers(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.ToUpper(strings.TrimSpace(p)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
