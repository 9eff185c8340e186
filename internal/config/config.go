package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Indexer IndexerConfig `yaml:"indexer"`
	Market  MarketConfig  `yaml:"market"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// IndexerConfig holds the configuration for the blockchain-indexing provider.
// The API key is only ever read from the environment, never from YAML.
type IndexerConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	APIKey               string  `yaml:"-"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	RateLimitBurst       int     `yaml:"rateLimitBurst"`
}

// MarketConfig holds the configuration for the market-data provider.
type MarketConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"-"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	MaxRetries           int    `yaml:"maxRetries"`
	RetryBaseDelayMillis int64  `yaml:"retryBaseDelayMillis"`
}

// CacheConfig holds the service-layer cache configuration.
type CacheConfig struct {
	FreshnessMinutes       int `yaml:"freshnessMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// LoadConfig loads configuration from a YAML file and applies defaults.
// Secrets (INDEXER_API_KEY, MARKET_API_KEY) come from the environment.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}

	// Apply default values for the indexer client if not set
	if cfg.Indexer.BaseURL == "" {
		cfg.Indexer.BaseURL = "https://deep-index.moralis.io/api/v2.2"
		logrus.Infof("Indexer.BaseURL not set, defaulting to %s", cfg.Indexer.BaseURL)
	}
	if cfg.Indexer.RequestTimeoutMillis == 0 {
		cfg.Indexer.RequestTimeoutMillis = 10000
		logrus.Infof("Indexer.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Indexer.RequestTimeoutMillis)
	}
	if cfg.Indexer.RateLimitPerSecond == 0 {
		cfg.Indexer.RateLimitPerSecond = 3
	}
	if cfg.Indexer.RateLimitBurst == 0 {
		cfg.Indexer.RateLimitBurst = 5
	}

	// Apply default values for the market client if not set
	if cfg.Market.BaseURL == "" {
		cfg.Market.BaseURL = "https://api.coingecko.com/api/v3"
		logrus.Infof("Market.BaseURL not set, defaulting to %s", cfg.Market.BaseURL)
	}
	if cfg.Market.RequestTimeoutMillis == 0 {
		cfg.Market.RequestTimeoutMillis = 10000
	}
	if cfg.Market.MaxRetries == 0 {
		cfg.Market.MaxRetries = 3
	}
	if cfg.Market.RetryBaseDelayMillis == 0 {
		cfg.Market.RetryBaseDelayMillis = 500
	}

	if cfg.Cache.FreshnessMinutes == 0 {
		cfg.Cache.FreshnessMinutes = 5
		logrus.Infof("Cache.FreshnessMinutes not set, defaulting to %d minutes", cfg.Cache.FreshnessMinutes)
	}
	if cfg.Cache.CleanupIntervalMinutes == 0 {
		cfg.Cache.CleanupIntervalMinutes = 10
	}

	// Environment-provided secrets. The indexer key is required for every
	// indexer-backed route; its absence is surfaced per request rather than
	// here, so market routes keep working without it.
	cfg.Indexer.APIKey = os.Getenv("INDEXER_API_KEY")
	if cfg.Indexer.APIKey == "" {
		logrus.Warn("INDEXER_API_KEY is not set; wallet and NFT routes will return configuration errors")
	}
	cfg.Market.APIKey = os.Getenv("MARKET_API_KEY")

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}
