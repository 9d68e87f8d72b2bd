package entity

import "time"

// TokenPrice is a quote for a contract token on a pricing platform.
type TokenPrice struct {
	PlatformID      string    `json:"platformId"`
	ContractAddress string    `json:"contractAddress"`
	Currency        string    `json:"currency"`
	Price           float64   `json:"price"`
	FetchedAt       time.Time `json:"fetchedAt"`
}
