package port

import "wallet_networks/internal/domain/entity"

// NetworkRegistry provides the catalogue of supported networks and their classification.
// Implementations are immutable after construction and safe for concurrent reads.
type NetworkRegistry interface {
	// ListNetworks returns every supported network in declaration order.
	ListNetworks() []entity.Network

	// NetworkByChainID returns the network registered under chainID.
	// The boolean is false for unknown chains; it never fails.
	NetworkByChainID(chainID string) (entity.Network, bool)

	// NetworkByName returns a network by its display name, including non-EVM networks.
	NetworkByName(name string) (entity.Network, bool)

	// IsEIP1559Compliant reports whether the chain supports base-fee plus priority-fee pricing.
	IsEIP1559Compliant(chainID string) bool

	// IsRollup reports whether the chain is an L2 rollup.
	IsRollup(chainID string) bool
}

// ExplorerLinkBuilder decorates chain identifiers with block-explorer metadata.
type ExplorerLinkBuilder interface {
	Website(chainID string) (entity.ScanWebsite, bool)
	AddressURL(chainID, address string) (string, error)
	TxURL(chainID, txHash string) (string, error)
}
