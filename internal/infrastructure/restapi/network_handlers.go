package restapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wallet_networks/internal/app/port"
	"wallet_networks/internal/domain"
	"wallet_networks/internal/domain/entity"
)

// APINetworkDetails is a network decorated with its classification and explorer.
type APINetworkDetails struct {
	entity.Network
	EIP1559  bool                `json:"eip1559"`
	Rollup   bool                `json:"rollup"`
	Explorer *entity.ScanWebsite `json:"explorer,omitempty"`
}

// APIError is the body of every non-2xx response.
type APIError struct {
	Error string `json:"error"`
}

// NetworkHandler serves the network registry and its collaborators over HTTP.
type NetworkHandler struct {
	registry port.NetworkRegistry
	links    port.ExplorerLinkBuilder
	prices   port.TokenPriceService
	logger   *zap.Logger
}

// NewNetworkHandler creates a new instance of NetworkHandler.
func NewNetworkHandler(
	registry port.NetworkRegistry,
	links port.ExplorerLinkBuilder,
	prices port.TokenPriceService,
	logger *zap.Logger,
) *NetworkHandler {
	return &NetworkHandler{
		registry: registry,
		links:    links,
		prices:   prices,
		logger:   logger.Named("NetworkHandler"),
	}
}

// ListNetworks returns every network in declaration order, optionally filtered by ?family=.
func (h *NetworkHandler) ListNetworks(c *gin.Context) {
	networks := h.registry.ListNetworks()
	if family := c.Query("family"); family != "" {
		filtered := networks[:0]
		for _, n := range networks {
			if strings.EqualFold(string(n.Family), family) {
				filtered = append(filtered, n)
			}
		}
		networks = filtered
	}
	c.JSON(http.StatusOK, gin.H{"networks": networks})
}

// GetNetwork returns one network by chain id.
func (h *NetworkHandler) GetNetwork(c *gin.Context) {
	chainID := c.Param("chainId")
	n, ok := h.registry.NetworkByChainID(chainID)
	if !ok {
		c.JSON(http.StatusNotFound, APIError{Error: "Unknown network"})
		return
	}

	details := APINetworkDetails{
		Network: n,
		EIP1559: h.registry.IsEIP1559Compliant(chainID),
		Rollup:  h.registry.IsRollup(chainID),
	}
	if site, ok := h.links.Website(chainID); ok {
		details.Explorer = &site
	}
	c.JSON(http.StatusOK, details)
}

// GetAddressURL returns the block explorer link for an address.
func (h *NetworkHandler) GetAddressURL(c *gin.Context) {
	url, err := h.links.AddressURL(c.Param("chainId"), c.Param("address"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetTxURL returns the block explorer link for a transaction.
func (h *NetworkHandler) GetTxURL(c *gin.Context) {
	url, err := h.links.TxURL(c.Param("chainId"), c.Param("hash"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetTokenPrices returns prices for ?addresses=a,b on the chain.
func (h *NetworkHandler) GetTokenPrices(c *gin.Context) {
	raw := c.Query("addresses")
	if raw == "" {
		c.JSON(http.StatusBadRequest, APIError{Error: "addresses query parameter is required"})
		return
	}
	var addresses []string
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addresses = append(addresses, a)
		}
	}

	chainID := c.Param("chainId")
	prices, err := h.prices.TokenPrices(c.Request.Context(), chainID, addresses)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chainId": chainID, "prices": prices})
}

// GetBaseAssetPrice returns the price of the chain's base asset.
func (h *NetworkHandler) GetBaseAssetPrice(c *gin.Context) {
	chainID := c.Param("chainId")
	n, ok := h.registry.NetworkByChainID(chainID)
	if !ok {
		c.JSON(http.StatusNotFound, APIError{Error: "Unknown network"})
		return
	}
	price, err := h.prices.BaseAssetPrice(c.Request.Context(), chainID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"network": n.Name, "symbol": n.BaseAsset.Symbol, "price": price})
}

// GetBaseAssetPriceByName returns the base-asset price of a network addressed by ?network=name.
func (h *NetworkHandler) GetBaseAssetPriceByName(c *gin.Context) {
	name := c.Query("network")
	if name == "" {
		c.JSON(http.StatusBadRequest, APIError{Error: "network query parameter is required"})
		return
	}
	price, err := h.prices.BaseAssetPriceByName(c.Request.Context(), name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"network": name, "price": price})
}

func (h *NetworkHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownNetwork), errors.Is(err, domain.ErrPriceUnavailable):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidChainID):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedFamily):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrExternalService):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, APIError{Error: err.Error()})
}
