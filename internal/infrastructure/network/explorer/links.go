package explorer

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"wallet_networks/internal/app/port"
	"wallet_networks/internal/domain"
	"wallet_networks/internal/domain/entity"
)

// scanWebsites maps chain ids to their block explorer.
var scanWebsites = map[string]entity.ScanWebsite{ //nolint:gochecknoglobals // Global for definitions
	"1":   {Title: "Etherscan", URL: "https://etherscan.io"},
	"31":  {Title: "RSKExplorer", URL: "https://explorer.rsk.co"},
	"10":  {Title: "Etherscan", URL: "https://optimistic.etherscan.io"},
	"137": {Title: "Polygonscan", URL: "https://polygonscan.com"},
	"5":   {Title: "Etherscan", URL: "https://goerli.etherscan.io"},
}

// LinkBuilder builds block explorer links for registered chains.
type LinkBuilder struct {
	registry port.NetworkRegistry
}

var _ port.ExplorerLinkBuilder = (*LinkBuilder)(nil)

// NewLinkBuilder creates a LinkBuilder backed by registry.
func NewLinkBuilder(registry port.NetworkRegistry) *LinkBuilder {
	return &LinkBuilder{registry: registry}
}

// Website returns the explorer for chainID. Chains unknown to the registry have none.
func (b *LinkBuilder) Website(chainID string) (entity.ScanWebsite, bool) {
	if _, ok := b.registry.NetworkByChainID(chainID); !ok {
		return entity.ScanWebsite{}, false
	}
	site, ok := scanWebsites[chainID]
	return site, ok
}

// AddressURL returns the explorer page of address, rendered in EIP-55 checksum form.
func (b *LinkBuilder) AddressURL(chainID, address string) (string, error) {
	site, err := b.website(chainID)
	if err != nil {
		return "", err
	}
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q is not a hex address", domain.ErrInvalidInput, address)
	}
	return site.URL + "/address/" + common.HexToAddress(address).Hex(), nil
}

// TxURL returns the explorer page of a transaction hash.
func (b *LinkBuilder) TxURL(chainID, txHash string) (string, error) {
	site, err := b.website(chainID)
	if err != nil {
		return "", err
	}
	if !isHexHash(txHash) {
		return "", fmt.Errorf("%w: %q is not a transaction hash", domain.ErrInvalidInput, txHash)
	}
	return site.URL + "/tx/" + common.HexToHash(txHash).Hex(), nil
}

func (b *LinkBuilder) website(chainID string) (entity.ScanWebsite, error) {
	site, ok := b.Website(chainID)
	if !ok {
		return entity.ScanWebsite{}, fmt.Errorf("%w: no block explorer for chain %q", domain.ErrUnknownNetwork, chainID)
	}
	return site, nil
}

func isHexHash(s string) bool {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return false
	}
	s = s[2:]
	if len(s) != 2*common.HashLength {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !('0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F')
	}) == -1
}
