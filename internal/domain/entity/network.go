package entity

import "math/big"

// Family identifies the execution model a network belongs to.
type Family string

// Known network families.
const (
	FamilyEVM Family = "EVM"
	FamilyBTC Family = "BTC"
)

// SupportsContracts reports whether networks of this family can execute smart-contract calls.
func (f Family) SupportsContracts() bool {
	return f == FamilyEVM
}

// Network is a blockchain the wallet can operate against.
// ChainID is only set for EVM-family networks.
type Network struct {
	Name                string   `json:"name" yaml:"name"`
	BaseAsset           Currency `json:"baseAsset" yaml:"baseAsset"`
	Family              Family   `json:"family" yaml:"family"`
	ChainID             string   `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	CoingeckoPlatformID string   `json:"coingeckoPlatformId" yaml:"coingeckoPlatformId"`
}

// IsEVM reports whether the network belongs to the EVM family.
func (n Network) IsEVM() bool {
	return n.Family == FamilyEVM
}

// ChainIDBig parses ChainID as a base-10 integer.
func (n Network) ChainIDBig() (*big.Int, bool) {
	if n.ChainID == "" {
		return nil, false
	}
	return new(big.Int).SetString(n.ChainID, 10)
}

// ScanWebsite describes the block explorer used to decorate links for a chain.
type ScanWebsite struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}
