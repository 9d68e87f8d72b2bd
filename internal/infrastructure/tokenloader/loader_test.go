package tokenloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet_networks/internal/infrastructure/network/definition"
	"wallet_networks/internal/pkg/logger"
)

func newLoader(t *testing.T, dir string) *TokenFileLoader {
	t.Helper()
	log := logger.NewSlogAdapter(zap.NewNop())
	registry, err := definition.NewRegistry(definition.Options{}, log)
	require.NoError(t, err)
	return NewTokenLoader(dir, registry, log)
}

func write(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestGetTokensByChainID(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "1.json", `[
		{"address": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", "symbol": "USDC", "decimals": 6},
		{"chainId": "1", "address": "0x6B175474E89094C44Da98b954EedeAC495271d0F", "symbol": "DAI", "decimals": 18},
		{"chainId": "137", "address": "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", "symbol": "USDC"},
		{"address": "not-hex", "symbol": "BAD"}
	]`)
	write(t, dir, "777.json", `[{"address": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"}]`)
	write(t, dir, "137.json", `{broken`)
	write(t, dir, "README.md", `ignored`)

	tokens, err := newLoader(t, dir).GetTokensByChainID()
	require.NoError(t, err)

	require.Len(t, tokens, 1)
	require.Len(t, tokens["1"], 2)
	assert.Equal(t, "USDC", tokens["1"][0].Symbol)
	assert.Equal(t, "1", tokens["1"][0].ChainID)
	assert.Equal(t, uint8(6), tokens["1"][0].Decimals)

	assert.Equal(t, []string{
		"0x6B175474E89094C44Da98b954EedeAC495271d0F",
		"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
	}, Addresses(tokens["1"]))
}

func TestMissingDirectory(t *testing.T) {
	tokens, err := newLoader(t, filepath.Join(t.TempDir(), "absent")).GetTokensByChainID()
	require.NoError(t, err)
	assert.Empty(t, tokens)
}
