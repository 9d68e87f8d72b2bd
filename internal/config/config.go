package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"wallet_networks/internal/pkg/utils"
)

// ForkChainIDEnv is the environment variable that overrides the mainnet fork chain id.
const ForkChainIDEnv = "MAINNET_FORK_CHAIN_ID"

// Config holds the overall configuration for the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Registry  RegistryConfig  `yaml:"registry"`
	CoinGecko CoinGeckoConfig `yaml:"coinGecko"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Tokens    TokensConfig    `yaml:"tokens"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level    string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	Encoding string `yaml:"encoding"`
	Output   string `yaml:"output"` // "stdout" or "stderr"
}

// RegistryConfig controls construction of the network registry.
type RegistryConfig struct {
	// ForkChainID overrides the chain id of the local mainnet fork. Nil means the built-in default.
	ForkChainID    *string `yaml:"forkChainID"`
	StrictChainIDs bool    `yaml:"strictChainIDs"`
}

// CoinGeckoConfig holds the configuration for the CoinGecko client.
type CoinGeckoConfig struct {
	BaseURL                string  `yaml:"baseURL"`
	APIKey                 string  `yaml:"apiKey"`
	VsCurrency             string  `yaml:"vsCurrency"`
	RequestTimeoutMillis   int64   `yaml:"requestTimeoutMillis"`
	RequestsPerSecond      float64 `yaml:"requestsPerSecond"`
	Burst                  int     `yaml:"burst"`
	MaxAddressesPerRequest int     `yaml:"maxAddressesPerRequest"`
}

// CacheConfig holds configuration for caching.
type CacheConfig struct {
	DefaultExpirationMinutes int `yaml:"defaultExpirationMinutes"`
	CleanupIntervalMinutes   int `yaml:"cleanupIntervalMinutes"`
}

// MetricsConfig holds configuration for the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// TokensConfig points at the per-chain token watchlists used to warm the price cache.
type TokensConfig struct {
	Dir                  string `yaml:"dir"`
	WarmUp               bool   `yaml:"warmUp"`
	WarmUpTimeoutSeconds int    `yaml:"warmUpTimeoutSeconds"`
}

// Default returns a configuration with every default applied and no file or environment input.
func Default() *Config {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	applyDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file, applies defaults and then environment overrides.
// A missing file is not an error: defaults and environment are used instead.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)

	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.Warnf("Config file %s not found, using defaults/env vars", path)
	case err != nil:
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	applyDefaults(cfg)
	applyEnv(cfg)

	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Encoding == "" {
		cfg.Logging.Encoding = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	cfg.CoinGecko.BaseURL = strings.TrimRight(cfg.CoinGecko.BaseURL, "/")
	if cfg.CoinGecko.VsCurrency == "" {
		cfg.CoinGecko.VsCurrency = "usd"
	}
	if cfg.CoinGecko.RequestTimeoutMillis <= 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 10000
	}
	if cfg.CoinGecko.RequestsPerSecond <= 0 {
		// Public API allows roughly 30 calls per minute.
		cfg.CoinGecko.RequestsPerSecond = 0.5
	}
	if cfg.CoinGecko.Burst <= 0 {
		cfg.CoinGecko.Burst = 1
	}
	if cfg.CoinGecko.MaxAddressesPerRequest <= 0 {
		cfg.CoinGecko.MaxAddressesPerRequest = 30
	}
	if cfg.Cache.DefaultExpirationMinutes <= 0 {
		cfg.Cache.DefaultExpirationMinutes = 5
	}
	if cfg.Cache.CleanupIntervalMinutes <= 0 {
		cfg.Cache.CleanupIntervalMinutes = 10
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Tokens.Dir == "" {
		cfg.Tokens.Dir = "data/tokens"
	}
	if cfg.Tokens.WarmUpTimeoutSeconds <= 0 {
		cfg.Tokens.WarmUpTimeoutSeconds = 300
	}
}

// applyEnv resolves environment overrides. It runs once per Load.
func applyEnv(cfg *Config) {
	if v := utils.LookupEnv(ForkChainIDEnv); v != nil {
		logrus.Infof("Using %s=%s for the mainnet fork chain id", ForkChainIDEnv, *v)
		cfg.Registry.ForkChainID = v
	}
}

// RequestTimeout returns the CoinGecko request timeout as a duration.
func (c CoinGeckoConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMillis) * time.Millisecond
}

// DefaultExpiration returns the default cache entry lifetime.
func (c CacheConfig) DefaultExpiration() time.Duration {
	return time.Duration(c.DefaultExpirationMinutes) * time.Minute
}

// WarmUpTimeout bounds the startup price cache warm-up.
func (c TokensConfig) WarmUpTimeout() time.Duration {
	return time.Duration(c.WarmUpTimeoutSeconds) * time.Second
}

// CleanupInterval returns the interval between expired-entry sweeps.
func (c CacheConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalMinutes) * time.Minute
}
