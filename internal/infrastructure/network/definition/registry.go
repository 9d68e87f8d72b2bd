package definition

import (
	"errors"
	"fmt"
	"strings"

	"wallet_networks/internal/app/port"
	"wallet_networks/internal/domain"
	"wallet_networks/internal/domain/entity"
	"wallet_networks/internal/pkg/metrics"
)

// Options controls registry construction.
type Options struct {
	// ForkChainIDOverride replaces DefaultForkChainID for the mainnet fork. Nil or empty means unset.
	ForkChainIDOverride *string
	// StrictChainIDs turns table invariant violations into construction errors.
	StrictChainIDs bool
}

// Registry is the immutable catalogue of supported networks.
// All methods are safe for concurrent use.
type Registry struct {
	logger      port.Logger
	networks    []entity.Network
	byChainID   map[string]entity.Network
	eip1559     map[string]struct{}
	rollups     map[string]struct{}
	forkChainID string
}

var _ port.NetworkRegistry = (*Registry)(nil)

// NewRegistry builds the registry from the predefined table.
func NewRegistry(opts Options, logger port.Logger) (*Registry, error) {
	forkChainID := ResolveForkChainID(opts.ForkChainIDOverride)
	return newRegistry(declaredNetworks(forkChainID), forkChainID, opts.StrictChainIDs, logger)
}

func newRegistry(networks []entity.Network, forkChainID string, strict bool, logger port.Logger) (*Registry, error) {
	if problems := Validate(networks); len(problems) > 0 {
		if strict {
			return nil, errors.Join(problems...)
		}
		for _, problem := range problems {
			logger.Warn("Network table invariant violated", "error", problem)
		}
	}

	r := &Registry{
		logger:      logger,
		networks:    networks,
		byChainID:   make(map[string]entity.Network, len(networks)),
		forkChainID: forkChainID,
	}

	for _, n := range networks {
		if !n.IsEVM() {
			continue
		}
		if prev, exists := r.byChainID[n.ChainID]; exists {
			logger.Warn("ChainID collision, later network replaces earlier one in index",
				"chainId", n.ChainID, "replaced", prev.Name, "by", n.Name)
		}
		r.byChainID[n.ChainID] = n
	}

	var err error
	if r.eip1559, err = r.classification("EIP-1559", eip1559CompliantChainIDs); err != nil {
		return nil, err
	}
	if r.rollups, err = r.classification("rollup", rollupChainIDs); err != nil {
		return nil, err
	}

	metrics.RegistryNetworks.Set(float64(len(networks)))
	logger.Info("Network registry initialized",
		"networks", len(networks),
		"indexed", len(r.byChainID),
		"forkChainId", forkChainID)
	return r, nil
}

// classification builds a lookup set from a curated chainID list; every id must be indexed.
func (r *Registry) classification(name string, chainIDs []string) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(chainIDs))
	for _, id := range chainIDs {
		if _, ok := r.byChainID[id]; !ok {
			return nil, fmt.Errorf("%w: %s chainID %q is not in the network table", domain.ErrConfiguration, name, id)
		}
		set[id] = struct{}{}
	}
	return set, nil
}

// Validate checks a network table against the registry invariants and returns every violation found.
func Validate(networks []entity.Network) []error {
	var problems []error
	owners := make(map[string]int, len(networks))

	for i, n := range networks {
		if n.Name == "" {
			problems = append(problems, fmt.Errorf("%w: network at position %d has no name", domain.ErrConfiguration, i))
		}
		if n.CoingeckoPlatformID == "" {
			problems = append(problems, fmt.Errorf("%w: network %q has no coingecko platform id", domain.ErrConfiguration, n.Name))
		}

		if !n.IsEVM() {
			if n.ChainID != "" {
				problems = append(problems, fmt.Errorf("%w: %s network %q must not carry a chainID", domain.ErrConfiguration, n.Family, n.Name))
			}
			continue
		}

		if !IsCanonicalChainID(n.ChainID) {
			problems = append(problems, fmt.Errorf("%w: %w: network %q has chainID %q",
				domain.ErrConfiguration, domain.ErrInvalidChainID, n.Name, n.ChainID))
			continue
		}
		if owner, taken := owners[n.ChainID]; taken {
			problems = append(problems, fmt.Errorf("%w: chainID %q shared by %q (position %d) and %q (position %d)",
				domain.ErrConfiguration, n.ChainID, networks[owner].Name, owner, n.Name, i))
			continue
		}
		owners[n.ChainID] = i
	}
	return problems
}

// IsCanonicalChainID reports whether id is a positive base-10 integer without sign or leading zeros.
func IsCanonicalChainID(id string) bool {
	if id == "" || id[0] == '0' {
		return false
	}
	return strings.IndexFunc(id, func(r rune) bool { return r < '0' || r > '9' }) == -1
}

// ListNetworks returns every network in declaration order.
func (r *Registry) ListNetworks() []entity.Network {
	out := make([]entity.Network, len(r.networks))
	copy(out, r.networks)
	return out
}

// NetworkByChainID returns the indexed network for chainID.
func (r *Registry) NetworkByChainID(chainID string) (entity.Network, bool) {
	n, ok := r.byChainID[chainID]
	observeLookup("by_chain_id", ok)
	return n, ok
}

// NetworkByName returns the first declared network whose name matches, ignoring case.
func (r *Registry) NetworkByName(name string) (entity.Network, bool) {
	for _, n := range r.networks {
		if strings.EqualFold(n.Name, name) {
			observeLookup("by_name", true)
			return n, true
		}
	}
	observeLookup("by_name", false)
	return entity.Network{}, false
}

// IsEIP1559Compliant reports whether chainID supports base-fee plus priority-fee pricing.
func (r *Registry) IsEIP1559Compliant(chainID string) bool {
	_, ok := r.eip1559[chainID]
	observeLookup("eip1559", ok)
	return ok
}

// IsRollup reports whether chainID is an L2 rollup.
func (r *Registry) IsRollup(chainID string) bool {
	_, ok := r.rollups[chainID]
	observeLookup("rollup", ok)
	return ok
}

// ForkChainID returns the chain id the mainnet fork was resolved to.
func (r *Registry) ForkChainID() string {
	return r.forkChainID
}

func observeLookup(operation string, hit bool) {
	result := metrics.ResultMiss
	if hit {
		result = metrics.ResultHit
	}
	metrics.RegistryLookups.WithLabelValues(operation, result).Inc()
}
