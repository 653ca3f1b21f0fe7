package networkdefinition

import (
	"fmt"
	"strings"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
)

// NetworkDefinitionProvider provides network definitions.
type NetworkDefinitionProvider struct {
	logger            port.Logger
	allNetworkDefs    map[string]entity.NetworkDefinition
	activeNetworkDefs []entity.NetworkDefinition
}

// Predefined test networks.
var ( //nolint:gochecknoglobals // Global for definitions
	Sepolia = entity.NetworkDefinition{
		ChainID:          11155111,
		Name:             "Sepolia",
		Identifier:       "sepolia",
		NativeCurrency:   entity.NativeCurrency{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18},
		PrimaryRPCURL:    "https://rpc.sepolia.org",
		FallbackRPCURLs:  []string{"https://ethereum-sepolia-rpc.publicnode.com", "https://rpc.ankr.com/eth_sepolia"},
		BlockExplorerURL: "https://sepolia.etherscan.io",
		Network:          entity.NetworkTestnet,
	}
	BSCTestnet = entity.NetworkDefinition{
		ChainID:          97,
		Name:             "Binance Smart Chain Testnet",
		Identifier:       "bsc_testnet",
		NativeCurrency:   entity.NativeCurrency{Name: "BNB", Symbol: "tBNB", Decimals: 18},
		PrimaryRPCURL:    "https://data-seed-prebsc-1-s1.bnbchain.org:8545",
		FallbackRPCURLs:  []string{"https://bsc-testnet-rpc.publicnode.com"},
		BlockExplorerURL: "https://testnet.bscscan.com",
		Network:          entity.NetworkTestnet,
	}
	PolygonMumbai = entity.NetworkDefinition{
		ChainID:          80001,
		Name:             "Polygon Mumbai",
		Identifier:       "polygon_mumbai",
		NativeCurrency:   entity.NativeCurrency{Name: "MATIC", Symbol: "MATIC", Decimals: 18},
		PrimaryRPCURL:    "https://rpc.ankr.com/polygon_mumbai",
		FallbackRPCURLs:  []string{"https://polygon-mumbai-bor-rpc.publicnode.com"},
		BlockExplorerURL: "https://mumbai.polygonscan.com",
		Network:          entity.NetworkTestnet,
	}
	Holesky = entity.NetworkDefinition{
		ChainID:          17000,
		Name:             "Holesky",
		Identifier:       "holesky",
		NativeCurrency:   entity.NativeCurrency{Name: "Holesky Ether", Symbol: "ETH", Decimals: 18},
		PrimaryRPCURL:    "https://ethereum-holesky-rpc.publicnode.com",
		BlockExplorerURL: "https://holesky.etherscan.io",
		Network:          entity.NetworkTestnet,
	}
	PolygonAmoy = entity.NetworkDefinition{
		ChainID:          80002,
		Name:             "Polygon Amoy",
		Identifier:       "polygon_amoy",
		NativeCurrency:   entity.NativeCurrency{Name: "POL", Symbol: "POL", Decimals: 18},
		PrimaryRPCURL:    "https://rpc-amoy.polygon.technology",
		FallbackRPCURLs:  []string{"https://polygon-amoy-bor-rpc.publicnode.com"},
		BlockExplorerURL: "https://amoy.polygonscan.com",
		Network:          entity.NetworkTestnet,
	}
	BaseSepolia = entity.NetworkDefinition{
		ChainID:          84532,
		Name:             "Base Sepolia",
		Identifier:       "base_sepolia",
		NativeCurrency:   entity.NativeCurrency{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18},
		PrimaryRPCURL:    "https://sepolia.base.org",
		BlockExplorerURL: "https://sepolia.basescan.org",
		Network:          entity.NetworkTestnet,
	}
)

// Predefined production networks.
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:          1,
		Name:             "Ethereum Mainnet",
		Identifier:       "ethereum",
		NativeCurrency:   entity.NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		PrimaryRPCURL:    "https://ethereum-rpc.publicnode.com",
		FallbackRPCURLs:  []string{"https://rpc.ankr.com/eth", "https://ethereum.publicnode.com"},
		BlockExplorerURL: "https://etherscan.io",
		Network:          entity.NetworkMainnet,
	}
	BSC = entity.NetworkDefinition{
		ChainID:          56,
		Name:             "BNB Smart Chain",
		Identifier:       "bsc",
		NativeCurrency:   entity.NativeCurrency{Name: "BNB", Symbol: "BNB", Decimals: 18},
		PrimaryRPCURL:    "https://1rpc.io/bnb",
		FallbackRPCURLs:  []string{"https://bsc-dataseed2.binance.org/", "https://bsc.publicnode.com"},
		BlockExplorerURL: "https://bscscan.com",
		Network:          entity.NetworkMainnet,
	}
	Polygon = entity.NetworkDefinition{
		ChainID:          137,
		Name:             "Polygon PoS",
		Identifier:       "polygon",
		NativeCurrency:   entity.NativeCurrency{Name: "MATIC", Symbol: "MATIC", Decimals: 18},
		PrimaryRPCURL:    "https://polygon-rpc.com/",
		FallbackRPCURLs:  []string{"https://rpc.ankr.com/polygon", "https://polygon.publicnode.com"},
		BlockExplorerURL: "https://polygonscan.com",
		Network:          entity.NetworkMainnet,
	}
)

// DefaultChainIdentifiers is the chain list the dApp ships with. Order sets the
// display priority in the wallet modal.
var DefaultChainIdentifiers = []string{ //nolint:gochecknoglobals
	Sepolia.Identifier,
	BSCTestnet.Identifier,
	PolygonMumbai.Identifier,
}

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[string]entity.NetworkDefinition{
	Sepolia.Identifier:       Sepolia,
	BSCTestnet.Identifier:    BSCTestnet,
	PolygonMumbai.Identifier: PolygonMumbai,
	Holesky.Identifier:       Holesky,
	PolygonAmoy.Identifier:   PolygonAmoy,
	BaseSepolia.Identifier:   BaseSepolia,
	Ethereum.Identifier:      Ethereum,
	BSC.Identifier:           BSC,
	Polygon.Identifier:       Polygon,
}

// NewNetworkDefinitionProvider creates a new NetworkDefinitionProvider whose active
// networks are the given identifiers, in the given order.
func NewNetworkDefinitionProvider(log port.Logger, identifiers []string) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger:            log,
		allNetworkDefs:    allKnownDefinitions,
		activeNetworkDefs: make([]entity.NetworkDefinition, 0, len(identifiers)),
	}

	activeIdentifiers := make(map[string]struct{})

	for _, raw := range identifiers {
		identifier := strings.ToLower(strings.TrimSpace(raw))

		if _, alreadyActive := activeIdentifiers[identifier]; alreadyActive {
			p.logger.Warn(fmt.Sprintf("Duplicate network identifier detected: %s. Skipping.", identifier))
			continue
		}

		def, ok := p.allNetworkDefs[identifier]
		if !ok {
			p.logger.Warn(fmt.Sprintf("Network '%s' is configured but no corresponding hardcoded network definition exists. Skipping.", raw))
			continue
		}

		p.activeNetworkDefs = append(p.activeNetworkDefs, def.Clone())
		activeIdentifiers[identifier] = struct{}{}
	}

	if len(p.activeNetworkDefs) == 0 {
		p.logger.Warn("No known networks configured. No networks will be active.", "requested", identifiers)
	} else {
		p.logger.Info(fmt.Sprintf("NetworkDefinitionProvider initialized. Active networks: %d", len(p.activeNetworkDefs)))
		for _, netDef := range p.activeNetworkDefs {
			p.logger.Debug(fmt.Sprintf("  - Active network: %s (ID: %s, ChainID: %d)", netDef.Name, netDef.Identifier, netDef.ChainID))
		}
	}

	return p
}

// GetAllNetworkDefinitions returns the list of active network definitions in configured order.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.activeNetworkDefs))
	for i, def := range p.activeNetworkDefs {
		defsCopy[i] = def.Clone()
	}
	return defsCopy
}

// GetNetworkDefinitionByName returns an active network definition by its identifier.
// Known networks that are not configured are not returned.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	for _, def := range p.activeNetworkDefs {
		if def.Identifier == identifier {
			return def.Clone(), true
		}
	}
	return entity.NetworkDefinition{}, false
}
