package entity

// TokenInfo is a contract token tracked on an EVM chain.
type TokenInfo struct {
	ChainID  string `json:"chainId"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Decimals uint8  `json:"decimals"`
}
