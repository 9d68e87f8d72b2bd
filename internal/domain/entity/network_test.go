package entity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkChainIDBig(t *testing.T) {
	n := Network{Family: FamilyEVM, ChainID: "42161"}
	id, ok := n.ChainIDBig()
	require.True(t, ok)
	assert.Equal(t, int64(42161), id.Int64())
	assert.True(t, n.IsEVM())
	assert.True(t, n.Family.SupportsContracts())

	_, ok = Network{Family: FamilyBTC}.ChainIDBig()
	assert.False(t, ok)

	_, ok = Network{Family: FamilyEVM, ChainID: "mainnet"}.ChainIDBig()
	assert.False(t, ok)
}

func TestCurrencyFormatAmount(t *testing.T) {
	wei, _ := new(big.Int).SetString("1234500000000000000", 10)

	tests := []struct {
		name     string
		currency Currency
		amount   *big.Int
		want     string
	}{
		{"ether", ETH, wei, "1.2345"},
		{"satoshi", BTC, big.NewInt(150000000), "1.5"},
		{"dust", BTC, big.NewInt(1), "0.00000001"},
		{"nil", MATIC, nil, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.currency.FormatAmount(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
