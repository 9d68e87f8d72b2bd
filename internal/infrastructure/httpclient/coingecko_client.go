package httpclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"wallet_networks/internal/config"
	"wallet_networks/internal/domain"
	"wallet_networks/internal/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const apiKeyHeader = "x-cg-pro-api-key"

// CoinGeckoClient defines the interface for interacting with the CoinGecko simple price API.
type CoinGeckoClient interface {
	// TokenPrices returns prices keyed by lower-cased contract address. Tokens without a quote are omitted.
	TokenPrices(ctx context.Context, platformID string, addresses []string, vsCurrency string) (map[string]float64, error)
	// CoinPrices returns prices keyed by coin id. Coins without a quote are omitted.
	CoinPrices(ctx context.Context, ids []string, vsCurrency string) (map[string]float64, error)
}

// simplePriceResponse is the shape shared by /simple/price and /simple/token_price.
type simplePriceResponse map[string]map[string]float64

type coinGeckoClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewCoinGeckoClient creates a rate-limited CoinGecko client.
func NewCoinGeckoClient(cfg config.CoinGeckoConfig, logger *zap.Logger) CoinGeckoClient {
	return newCoinGeckoClient(cfg, &fasthttp.Client{Name: "wallet_networks"}, logger)
}

func newCoinGeckoClient(cfg config.CoinGeckoConfig, client *fasthttp.Client, logger *zap.Logger) *coinGeckoClientImpl {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	timeout := cfg.RequestTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &coinGeckoClientImpl{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: timeout,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.Named("CoinGeckoClient"),
	}
}

// TokenPrices implements CoinGeckoClient.
func (c *coinGeckoClientImpl) TokenPrices(ctx context.Context, platformID string, addresses []string, vsCurrency string) (map[string]float64, error) {
	if platformID == "" {
		return nil, fmt.Errorf("%w: platform id is empty", domain.ErrInvalidInput)
	}
	if len(addresses) == 0 {
		return nil, fmt.Errorf("%w: token addresses cannot be empty", domain.ErrInvalidInput)
	}

	lowered := make([]string, len(addresses))
	for i, a := range addresses {
		lowered[i] = strings.ToLower(a)
	}

	resp, err := c.get(ctx, "token_price", "/simple/token_price/"+platformID, map[string]string{
		"contract_addresses": strings.Join(lowered, ","),
		"vs_currencies":      vsCurrency,
	})
	if err != nil {
		return nil, err
	}
	return pick(resp, vsCurrency, strings.ToLower), nil
}

// CoinPrices implements CoinGeckoClient.
func (c *coinGeckoClientImpl) CoinPrices(ctx context.Context, ids []string, vsCurrency string) (map[string]float64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: coin ids cannot be empty", domain.ErrInvalidInput)
	}

	resp, err := c.get(ctx, "price", "/simple/price", map[string]string{
		"ids":           strings.Join(ids, ","),
		"vs_currencies": vsCurrency,
	})
	if err != nil {
		return nil, err
	}
	return pick(resp, vsCurrency, func(s string) string { return s }), nil
}

func pick(resp simplePriceResponse, vsCurrency string, normalize func(string) string) map[string]float64 {
	vs := strings.ToLower(vsCurrency)
	out := make(map[string]float64, len(resp))
	for key, quotes := range resp {
		if price, ok := quotes[vs]; ok {
			out[normalize(key)] = price
		}
	}
	return out
}

func (c *coinGeckoClientImpl) get(ctx context.Context, endpoint, path string, query map[string]string) (simplePriceResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for coingecko rate limiter: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	args := req.URI().QueryArgs()
	for k, v := range query {
		args.Add(k, v)
	}
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("coingecko %s request: %w", endpoint, context.DeadlineExceeded)
	}

	requestURL := req.URI().String()
	c.logger.Debug("Requesting prices from CoinGecko", zap.String("url", requestURL), zap.Duration("timeout", timeout))

	started := time.Now()
	err := c.client.DoTimeout(req, resp, timeout)
	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode())
	}
	metrics.CoinGeckoRequestDuration.WithLabelValues(endpoint, status).Observe(time.Since(started).Seconds())

	if err != nil {
		c.logger.Error("Failed to execute request to CoinGecko", zap.String("url", requestURL), zap.Error(err))
		if errors.Is(err, fasthttp.ErrTimeout) {
			return nil, fmt.Errorf("%w: coingecko %s request timed out: %v", domain.ErrExternalService, endpoint, err)
		}
		return nil, fmt.Errorf("%w: failed to execute request to coingecko: %v", domain.ErrExternalService, err)
	}

	body := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("CoinGecko API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", body[:min(512, len(body))]),
		)
		return nil, fmt.Errorf("%w: coingecko returned status %d", domain.ErrExternalService, resp.StatusCode())
	}

	var out simplePriceResponse
	if err := json.Unmarshal(body, &out); err != nil {
		c.logger.Error("Failed to unmarshal CoinGecko response",
			zap.String("url", requestURL),
			zap.Error(err),
			zap.ByteString("bodySample", body[:min(512, len(body))]),
		)
		return nil, fmt.Errorf("%w: failed to parse coingecko response: %v", domain.ErrExternalService, err)
	}
	return out, nil
}
