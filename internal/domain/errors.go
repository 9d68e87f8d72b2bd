package domain

import "errors"

var (
	// ErrConfiguration means the registry or service configuration violates a startup invariant.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUnknownNetwork means no network is registered under the requested identifier.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrInvalidChainID means a chain identifier is not a base-10 integer string.
	ErrInvalidChainID = errors.New("invalid chain id")

	// ErrInvalidInput is returned when caller input (address, hash, query) is malformed.
	ErrInvalidInput = errors.New("invalid input provided")

	// ErrUnsupportedFamily means the operation is not available for the network's family.
	ErrUnsupportedFamily = errors.New("operation not supported by network family")

	// ErrPriceUnavailable means the pricing service has no quote for the requested asset.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrExternalService is returned when an interaction with an external service fails.
	ErrExternalService = errors.New("external service interaction failed")
)
