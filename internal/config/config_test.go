package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(ForkChainIDEnv, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.CoinGecko.BaseURL)
	assert.Equal(t, "usd", cfg.CoinGecko.VsCurrency)
	assert.Equal(t, 30, cfg.CoinGecko.MaxAddressesPerRequest)
	assert.Equal(t, 10*time.Second, cfg.CoinGecko.RequestTimeout())
	assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultExpiration())
	assert.True(t, cfg.Metrics.Enabled)
	assert.Nil(t, cfg.Registry.ForkChainID)
	assert.Equal(t, "data/tokens", cfg.Tokens.Dir)
	assert.False(t, cfg.Tokens.WarmUp)
	assert.Equal(t, 5*time.Minute, cfg.Tokens.WarmUpTimeout())
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: "9090"
logging:
  level: debug
  encoding: console
registry:
  forkChainID: "31337"
  strictChainIDs: true
coinGecko:
  baseURL: https://pro-api.coingecko.com/api/v3/
  apiKey: secret
metrics:
  enabled: false
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv(ForkChainIDEnv, "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "console", cfg.Logging.Encoding)
	require.NotNil(t, cfg.Registry.ForkChainID)
	assert.Equal(t, "31337", *cfg.Registry.ForkChainID)
	assert.True(t, cfg.Registry.StrictChainIDs)
	assert.Equal(t, "https://pro-api.coingecko.com/api/v3", cfg.CoinGecko.BaseURL)
	assert.False(t, cfg.Metrics.Enabled)

	t.Setenv(ForkChainIDEnv, "9999")
	cfg, err = Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Registry.ForkChainID)
	assert.Equal(t, "9999", *cfg.Registry.ForkChainID)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 1, cfg.CoinGecko.Burst)
}
