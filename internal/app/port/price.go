package port

import (
	"context"

	"wallet_networks/internal/domain/entity"
)

// TokenPriceService resolves prices for assets on registered networks.
type TokenPriceService interface {
	// TokenPrices returns quotes for contract tokens on the EVM chain identified by chainID.
	// Addresses without a quote are omitted from the result.
	TokenPrices(ctx context.Context, chainID string, addresses []string) ([]entity.TokenPrice, error)

	// BaseAssetPrice returns the price of the chain's base asset in the configured vs currency.
	BaseAssetPrice(ctx context.Context, chainID string) (float64, error)

	// BaseAssetPriceByName is BaseAssetPrice for networks addressed by name (e.g. non-EVM ones).
	BaseAssetPriceByName(ctx context.Context, networkName string) (float64, error)
}
