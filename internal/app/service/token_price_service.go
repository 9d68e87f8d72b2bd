package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"wallet_networks/internal/app/port"
	"wallet_networks/internal/config"
	"wallet_networks/internal/domain"
	"wallet_networks/internal/domain/entity"
	"wallet_networks/internal/infrastructure/httpclient"
	"wallet_networks/internal/pkg/metrics"
	"wallet_networks/internal/pkg/utils"
)

// baseAssetCoinIDs maps base-asset symbols to CoinGecko coin ids. Testnet assets are absent.
var baseAssetCoinIDs = map[string]string{ //nolint:gochecknoglobals // Global for definitions
	"ETH":   "ethereum",
	"MATIC": "matic-network",
	"RBTC":  "rootstock",
	"BTC":   "bitcoin",
}

const maxConcurrentBatches = 4

type tokenPriceServiceImpl struct {
	registry   port.NetworkRegistry
	client     httpclient.CoinGeckoClient
	cache      *cache.Cache
	group      singleflight.Group
	vsCurrency string
	batchSize  int
	logger     *zap.Logger
	now        func() time.Time
}

// NewTokenPriceService creates a cached price service over the CoinGecko client.
func NewTokenPriceService(
	registry port.NetworkRegistry,
	client httpclient.CoinGeckoClient,
	cfg *config.Config,
	logger *zap.Logger,
) port.TokenPriceService {
	s := &tokenPriceServiceImpl{
		registry:   registry,
		client:     client,
		cache:      cache.New(cfg.Cache.DefaultExpiration(), cfg.Cache.CleanupInterval()),
		vsCurrency: strings.ToLower(cfg.CoinGecko.VsCurrency),
		batchSize:  cfg.CoinGecko.MaxAddressesPerRequest,
		logger:     logger.Named("TokenPriceService"),
		now:        time.Now,
	}
	s.logger.Info("TokenPriceService initialized",
		zap.String("vsCurrency", s.vsCurrency),
		zap.Int("batchSize", s.batchSize),
		zap.Duration("ttl", cfg.Cache.DefaultExpiration()))
	return s
}

// TokenPrices implements port.TokenPriceService.
func (s *tokenPriceServiceImpl) TokenPrices(ctx context.Context, chainID string, addresses []string) ([]entity.TokenPrice, error) {
	network, ok := s.registry.NetworkByChainID(chainID)
	if !ok {
		return nil, fmt.Errorf("%w: chain %q", domain.ErrUnknownNetwork, chainID)
	}
	if !network.Family.SupportsContracts() {
		return nil, fmt.Errorf("%w: %s has no token contracts", domain.ErrUnsupportedFamily, network.Name)
	}
	platform := network.CoingeckoPlatformID

	wanted := make([]string, 0, len(addresses))
	seen := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("%w: %q is not a hex address", domain.ErrInvalidInput, a)
		}
		a = strings.ToLower(a)
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		wanted = append(wanted, a)
	}

	found := make(map[string]entity.TokenPrice, len(wanted))
	var misses []string
	for _, a := range wanted {
		if p, hit := s.cachedToken(platform, a); hit {
			found[a] = p
			continue
		}
		misses = append(misses, a)
	}

	if len(misses) > 0 {
		s.logger.Debug("Fetching token prices",
			zap.String("platform", platform),
			zap.Int("cached", len(found)),
			zap.Int("missing", len(misses)))

		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentBatches)
		for _, batch := range utils.BatchStrings(misses, s.batchSize) {
			batch := batch
			g.Go(func() error {
				prices, err := s.fetchTokenBatch(gctx, platform, batch)
				if err != nil {
					return err
				}
				mu.Lock()
				defer mu.Unlock()
				for _, p := range prices {
					found[p.ContractAddress] = p
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			s.logger.Error("Failed to fetch token prices", zap.String("platform", platform), zap.Error(err))
			return nil, err
		}
	}

	out := make([]entity.TokenPrice, 0, len(found))
	for _, a := range wanted {
		if p, ok := found[a]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *tokenPriceServiceImpl) fetchTokenBatch(ctx context.Context, platform string, batch []string) ([]entity.TokenPrice, error) {
	key := platform + ":" + s.vsCurrency + ":" + strings.Join(batch, ",")
	v, err, shared := s.group.Do(key, func() (any, error) {
		raw, err := s.client.TokenPrices(ctx, platform, batch, s.vsCurrency)
		if err != nil {
			return nil, err
		}
		fetchedAt := s.now()
		prices := make([]entity.TokenPrice, 0, len(raw))
		for _, a := range batch {
			price, ok := raw[a]
			if !ok {
				continue
			}
			p := entity.TokenPrice{
				PlatformID:      platform,
				ContractAddress: a,
				Currency:        s.vsCurrency,
				Price:           price,
				FetchedAt:       fetchedAt,
			}
			s.cache.SetDefault(s.tokenKey(platform, a), p)
			prices = append(prices, p)
		}
		return prices, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Shared in-flight token price request", zap.String("platform", platform), zap.Int("size", len(batch)))
	}
	return v.([]entity.TokenPrice), nil
}

// BaseAssetPrice implements port.TokenPriceService.
func (s *tokenPriceServiceImpl) BaseAssetPrice(ctx context.Context, chainID string) (float64, error) {
	network, ok := s.registry.NetworkByChainID(chainID)
	if !ok {
		return 0, fmt.Errorf("%w: chain %q", domain.ErrUnknownNetwork, chainID)
	}
	return s.baseAssetPrice(ctx, network)
}

// BaseAssetPriceByName implements port.TokenPriceService.
func (s *tokenPriceServiceImpl) BaseAssetPriceByName(ctx context.Context, networkName string) (float64, error) {
	network, ok := s.registry.NetworkByName(networkName)
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownNetwork, networkName)
	}
	return s.baseAssetPrice(ctx, network)
}

func (s *tokenPriceServiceImpl) baseAssetPrice(ctx context.Context, network entity.Network) (float64, error) {
	coinID, ok := baseAssetCoinIDs[network.BaseAsset.Symbol]
	if !ok {
		return 0, fmt.Errorf("%w: %s on %s", domain.ErrPriceUnavailable, network.BaseAsset.Symbol, network.Name)
	}

	key := "coin:" + coinID + ":" + s.vsCurrency
	if x, found := s.cache.Get(key); found {
		if price, ok := x.(float64); ok {
			metrics.PriceCacheRequests.WithLabelValues(metrics.ResultHit).Inc()
			return price, nil
		}
		s.logger.Warn("Cache data type mismatch for key", zap.String("key", key), zap.String("type", fmt.Sprintf("%T", x)))
	}
	metrics.PriceCacheRequests.WithLabelValues(metrics.ResultMiss).Inc()

	v, err, _ := s.group.Do(key, func() (any, error) {
		prices, err := s.client.CoinPrices(ctx, []string{coinID}, s.vsCurrency)
		if err != nil {
			return 0.0, err
		}
		price, ok := prices[coinID]
		if !ok {
			return 0.0, fmt.Errorf("%w: no %s quote for %s", domain.ErrPriceUnavailable, s.vsCurrency, coinID)
		}
		s.cache.SetDefault(key, price)
		return price, nil
	})
	if err != nil {
		s.logger.Warn("Base asset price lookup failed", zap.String("network", network.Name), zap.Error(err))
		return 0, err
	}
	return v.(float64), nil
}

func (s *tokenPriceServiceImpl) tokenKey(platform, address string) string {
	return platform + ":" + address + ":" + s.vsCurrency
}

func (s *tokenPriceServiceImpl) cachedToken(platform, address string) (entity.TokenPrice, bool) {
	key := s.tokenKey(platform, address)
	if x, found := s.cache.Get(key); found {
		if p, ok := x.(entity.TokenPrice); ok {
			metrics.PriceCacheRequests.WithLabelValues(metrics.ResultHit).Inc()
			return p, true
		}
		s.logger.Warn("Cache data type mismatch for key", zap.String("key", key), zap.String("type", fmt.Sprintf("%T", x)))
	}
	metrics.PriceCacheRequests.WithLabelValues(metrics.ResultMiss).Inc()
	return entity.TokenPrice{}, false
}
