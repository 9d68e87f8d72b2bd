package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet_networks/internal/config"
	"wallet_networks/internal/domain"
	"wallet_networks/internal/infrastructure/network/definition"
	"wallet_networks/internal/pkg/logger"
)

type fakeCoinGecko struct {
	mu          sync.Mutex
	tokenCalls  [][]string
	coinCalls   [][]string
	platforms   []string
	tokenPrices map[string]float64
	coinPrices  map[string]float64
	err         error
}

func (f *fakeCoinGecko) TokenPrices(_ context.Context, platformID string, addresses []string, _ string) (map[string]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenCalls = append(f.tokenCalls, addresses)
	f.platforms = append(f.platforms, platformID)
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]float64)
	for _, a := range addresses {
		if p, ok := f.tokenPrices[a]; ok {
			out[a] = p
		}
	}
	return out, nil
}

func (f *fakeCoinGecko) CoinPrices(_ context.Context, ids []string, _ string) (map[string]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coinCalls = append(f.coinCalls, ids)
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]float64)
	for _, id := range ids {
		if p, ok := f.coinPrices[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

const (
	weth = "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
	usdc = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
	dai  = "0x6b175474e89094c44da98b954eedeac495271d0f"
	usdt = "0xdac17f958d2ee523a2206206994597c13d831ec7"
	wbtc = "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599"
)

func newTestService(t *testing.T, client *fakeCoinGecko, batchSize int) *tokenPriceServiceImpl {
	t.Helper()
	registry, err := definition.NewRegistry(definition.Options{}, logger.NewSlogAdapter(zap.NewNop()))
	require.NoError(t, err)

	cfg := config.Default()
	cfg.CoinGecko.MaxAddressesPerRequest = batchSize
	return NewTokenPriceService(registry, client, cfg, zap.NewNop()).(*tokenPriceServiceImpl)
}

func TestTokenPricesCachesAndBatches(t *testing.T) {
	client := &fakeCoinGecko{tokenPrices: map[string]float64{
		weth: 3000, usdc: 1, dai: 0.999, usdt: 1.001,
	}}
	s := newTestService(t, client, 2)

	// Mixed case and duplicates are normalized before fetching.
	addrs := []string{"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", usdc, dai, usdt, wbtc, weth}
	prices, err := s.TokenPrices(context.Background(), "1", addrs)
	require.NoError(t, err)

	require.Len(t, prices, 4)
	assert.Equal(t, weth, prices[0].ContractAddress)
	assert.Equal(t, 3000.0, prices[0].Price)
	assert.Equal(t, "ethereum", prices[0].PlatformID)
	assert.Equal(t, "usd", prices[0].Currency)
	assert.False(t, prices[0].FetchedAt.IsZero())

	assert.Len(t, client.tokenCalls, 3)
	for _, call := range client.tokenCalls {
		assert.LessOrEqual(t, len(call), 2)
	}

	// Every quoted address is now cached; only the unquoted one is fetched again.
	_, err = s.TokenPrices(context.Background(), "1", []string{weth, usdc, wbtc})
	require.NoError(t, err)
	require.Len(t, client.tokenCalls, 4)
	assert.Equal(t, []string{wbtc}, client.tokenCalls[3])
}

func TestTokenPricesUsesNetworkPlatform(t *testing.T) {
	client := &fakeCoinGecko{tokenPrices: map[string]float64{usdc: 1}}
	s := newTestService(t, client, 30)

	_, err := s.TokenPrices(context.Background(), "137", []string{usdc})
	require.NoError(t, err)
	assert.Equal(t, []string{"polygon-pos"}, client.platforms)
}

func TestTokenPricesErrors(t *testing.T) {
	client := &fakeCoinGecko{}
	s := newTestService(t, client, 30)

	_, err := s.TokenPrices(context.Background(), "999", []string{weth})
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)

	_, err = s.TokenPrices(context.Background(), "1", []string{"not-an-address"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	client.err = domain.ErrExternalService
	_, err = s.TokenPrices(context.Background(), "1", []string{weth})
	assert.ErrorIs(t, err, domain.ErrExternalService)

	prices, err := s.TokenPrices(context.Background(), "1", nil)
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestBaseAssetPrice(t *testing.T) {
	client := &fakeCoinGecko{coinPrices: map[string]float64{
		"ethereum": 3000, "matic-network": 0.7, "bitcoin": 65000,
	}}
	s := newTestService(t, client, 30)
	ctx := context.Background()

	price, err := s.BaseAssetPrice(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3000.0, price)

	// Goerli shares the ETH base asset and the cached quote.
	price, err = s.BaseAssetPrice(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, 3000.0, price)
	assert.Len(t, client.coinCalls, 1)

	price, err = s.BaseAssetPrice(ctx, "137")
	require.NoError(t, err)
	assert.Equal(t, 0.7, price)

	_, err = s.BaseAssetPrice(ctx, "31")
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)

	_, err = s.BaseAssetPrice(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)

	price, err = s.BaseAssetPriceByName(ctx, "Bitcoin")
	require.NoError(t, err)
	assert.Equal(t, 65000.0, price)

	_, err = s.BaseAssetPriceByName(ctx, "Dogecoin")
	assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
}

func TestBaseAssetPriceMissingQuote(t *testing.T) {
	client := &fakeCoinGecko{coinPrices: map[string]float64{}}
	s := newTestService(t, client, 30)

	_, err := s.BaseAssetPrice(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)

	client.err = errors.New("boom")
	_, err = s.BaseAssetPrice(context.Background(), "1")
	assert.EqualError(t, err, "boom")
}
