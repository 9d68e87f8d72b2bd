package entity

import (
	"math/big"

	"wallet_networks/internal/pkg/utils"
)

// Currency is the base-asset unit of a network.
type Currency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// FormatAmount renders an amount of the smallest unit as a decimal string.
func (c Currency) FormatAmount(amount *big.Int) (string, error) {
	return utils.FormatBigInt(amount, c.Decimals)
}

// Known base assets.
var ( //nolint:gochecknoglobals // Global for definitions
	ETH = Currency{
		Name:     "Ether",
		Symbol:   "ETH",
		Decimals: 18,
	}
	MATIC = Currency{
		Name:     "Matic Network Token",
		Symbol:   "MATIC",
		Decimals: 18,
	}
	OptimisticETH = Currency{
		Name:     "Optimistic Ether",
		Symbol:   "ETH",
		Decimals: 18,
	}
	TRBTC = Currency{
		Name:     "Test RSK Bitcoin",
		Symbol:   "tRBTC",
		Decimals: 18,
	}
	BTC = Currency{
		Name:     "Bitcoin",
		Symbol:   "BTC",
		Decimals: 8,
	}
)
