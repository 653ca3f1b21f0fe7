package restapi

import (
	"net/http"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
	"wallet_connector/internal/infrastructure/walletkit"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NetworksResponse lists the configured chains in display order.
type NetworksResponse struct {
	Networks []entity.NetworkDefinition `json:"networks"`
}

// ConnectorsResponse lists the wallet connectors in modal order.
type ConnectorsResponse struct {
	Connectors []entity.ConnectorInfo `json:"connectors"`
}

// WalletConfigHandler serves the wallet-connection configuration to the front-end.
type WalletConfigHandler struct {
	source   port.WalletConfigSource
	networks port.NetworkDefinitionProvider
	logger   port.Logger
}

// NewWalletConfigHandler creates a new WalletConfigHandler.
// Network identifiers in request paths are resolved through networks.
func NewWalletConfigHandler(source port.WalletConfigSource, networks port.NetworkDefinitionProvider, logger port.Logger) *WalletConfigHandler {
	return &WalletConfigHandler{source: source, networks: networks, logger: logger}
}

// GetWalletConfigHandler returns the full client configuration.
func (h *WalletConfigHandler) GetWalletConfigHandler(c *gin.Context) {
	cfg, err := h.source.Build()
	if err != nil {
		h.logger.Error("Wallet configuration unavailable", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	body, err := json.Marshal(cfg)
	if err != nil {
		h.logger.Error("Failed to encode wallet configuration", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to encode wallet configuration"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// ListNetworksHandler returns the configured chains.
func (h *WalletConfigHandler) ListNetworksHandler(c *gin.Context) {
	cfg, err := h.source.Build()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, NetworksResponse{Networks: cfg.Chains()})
}

// GetNetworkHandler returns one configured chain by identifier.
func (h *WalletConfigHandler) GetNetworkHandler(c *gin.Context) {
	_, chain, ok := h.lookupNetwork(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, chain)
}

// GetNetworkStatusHandler dials the chain transport if needed and reports its head.
func (h *WalletConfigHandler) GetNetworkStatusHandler(c *gin.Context) {
	cfg, chain, ok := h.lookupNetwork(c)
	if !ok {
		return
	}

	status, err := cfg.ChainStatus(c.Request.Context(), chain.ChainID)
	if err != nil {
		h.logger.Warn("Network status check failed", "network", chain.Identifier, "error", err)
		c.JSON(http.StatusBadGateway, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

// ListConnectorsHandler returns the wallet connectors.
func (h *WalletConfigHandler) ListConnectorsHandler(c *gin.Context) {
	cfg, err := h.source.Build()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ConnectorsResponse{Connectors: cfg.Connectors()})
}

func (h *WalletConfigHandler) lookupNetwork(c *gin.Context) (*walletkit.Config, entity.NetworkDefinition, bool) {
	cfg, err := h.source.Build()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return nil, entity.NetworkDefinition{}, false
	}

	identifier := c.Param("identifier")
	def, ok := h.networks.GetNetworkDefinitionByName(identifier)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "network " + identifier + " is not configured"})
		return nil, entity.NetworkDefinition{}, false
	}

	// The built config carries the effective RPC URLs, so answer with its copy.
	chain, ok := cfg.Chain(def.ChainID)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "network " + identifier + " is not configured"})
		return nil, entity.NetworkDefinition{}, false
	}
	return cfg, chain, true
}
