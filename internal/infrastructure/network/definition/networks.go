package definition

import "wallet_networks/internal/domain/entity"

// DefaultForkChainID is used for the mainnet fork when no override is configured.
const DefaultForkChainID = "1337"

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.Network{
		Name:                "Ethereum",
		BaseAsset:           entity.ETH,
		Family:              entity.FamilyEVM,
		ChainID:             "1",
		CoingeckoPlatformID: "ethereum",
	}
	Polygon = entity.Network{
		Name:                "Polygon",
		BaseAsset:           entity.MATIC,
		Family:              entity.FamilyEVM,
		ChainID:             "137",
		CoingeckoPlatformID: "polygon-pos",
	}
	RSK = entity.Network{
		Name:                "RSK",
		BaseAsset:           entity.TRBTC,
		Family:              entity.FamilyEVM,
		ChainID:             "31",
		CoingeckoPlatformID: "rootstock",
	}
	ArbitrumOne = entity.Network{
		Name:                "Arbitrum",
		BaseAsset:           entity.ETH,
		Family:              entity.FamilyEVM,
		ChainID:             "42161",
		CoingeckoPlatformID: "arbitrum-one",
	}
	Optimism = entity.Network{
		Name:                "Optimism",
		BaseAsset:           entity.OptimisticETH,
		Family:              entity.FamilyEVM,
		ChainID:             "10",
		CoingeckoPlatformID: "optimistic-ethereum",
	}
	Ropsten = entity.Network{
		Name:                "Ropsten",
		BaseAsset:           entity.ETH,
		Family:              entity.FamilyEVM,
		ChainID:             "3",
		CoingeckoPlatformID: "ethereum",
	}
	Rinkeby = entity.Network{
		Name:                "Rinkeby",
		BaseAsset:           entity.ETH,
		Family:              entity.FamilyEVM,
		ChainID:             "4",
		CoingeckoPlatformID: "ethereum",
	}
	Goerli = entity.Network{
		Name:                "Goerli",
		BaseAsset:           entity.ETH,
		Family:              entity.FamilyEVM,
		ChainID:             "5",
		CoingeckoPlatformID: "ethereum",
	}
	Kovan = entity.Network{
		Name:                "Kovan",
		BaseAsset:           entity.ETH,
		Family:              entity.FamilyEVM,
		ChainID:             "42",
		CoingeckoPlatformID: "ethereum",
	}
	Bitcoin = entity.Network{
		Name:                "Bitcoin",
		BaseAsset:           entity.BTC,
		Family:              entity.FamilyBTC,
		CoingeckoPlatformID: "bitcoin",
	}
)

// eip1559CompliantChainIDs is the curated fee-market list. Every entry must exist in the table.
var eip1559CompliantChainIDs = []string{ //nolint:gochecknoglobals // Global for definitions
	Ethereum.ChainID,
	Polygon.ChainID,
	Goerli.ChainID,
	RSK.ChainID,
}

// rollupChainIDs is the curated L2 list. Every entry must exist in the table.
var rollupChainIDs = []string{ //nolint:gochecknoglobals // Global for definitions
	Optimism.ChainID,
}

// Fork returns the local mainnet fork network for the given chain id.
func Fork(chainID string) entity.Network {
	return entity.Network{
		Name:                "Ethereum",
		BaseAsset:           entity.ETH,
		Family:              entity.FamilyEVM,
		ChainID:             chainID,
		CoingeckoPlatformID: "ethereum",
	}
}

// ResolveForkChainID returns the override when it is set and non-empty, DefaultForkChainID otherwise.
// The value is used verbatim.
func ResolveForkChainID(override *string) string {
	if override == nil || *override == "" {
		return DefaultForkChainID
	}
	return *override
}

// declaredNetworks builds the table in declaration order. The fork is always last.
func declaredNetworks(forkChainID string) []entity.Network {
	return []entity.Network{
		Ethereum,
		Polygon,
		RSK,
		ArbitrumOne,
		Optimism,
		Ropsten,
		Rinkeby,
		Goerli,
		Kovan,
		Bitcoin,
		Fork(forkChainID),
	}
}
