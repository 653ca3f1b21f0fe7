package entity

// NetworkType classifies a network as a production or a test deployment.
type NetworkType string

// Known network types.
const (
	NetworkMainnet NetworkType = "mainnet"
	NetworkTestnet NetworkType = "testnet"
)

// NativeCurrency describes the gas currency of a network.
type NativeCurrency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

// NetworkDefinition holds the configuration for a specific blockchain network.
// This structure is defined at the domain level to be used across application and infrastructure layers.
type NetworkDefinition struct {
	ChainID          uint64         `json:"id" yaml:"chainId"`
	Name             string         `json:"name" yaml:"name"`
	Identifier       string         `json:"identifier" yaml:"identifier"` // e.g. "sepolia", "bsc_testnet"
	NativeCurrency   NativeCurrency `json:"nativeCurrency" yaml:"nativeCurrency"`
	PrimaryRPCURL    string         `json:"primaryRpcUrl" yaml:"primaryRpcUrl"`
	FallbackRPCURLs  []string       `json:"fallbackRpcUrls,omitempty" yaml:"fallbackRpcUrls,omitempty"`
	BlockExplorerURL string         `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
	Network          NetworkType    `json:"network" yaml:"network"`
}

// RPCURLs returns the primary RPC URL followed by the fallbacks.
func (d NetworkDefinition) RPCURLs() []string {
	urls := make([]string, 0, 1+len(d.FallbackRPCURLs))
	if d.PrimaryRPCURL != "" {
		urls = append(urls, d.PrimaryRPCURL)
	}
	return append(urls, d.FallbackRPCURLs...)
}

// IsTestnet reports whether the network is a test deployment.
func (d NetworkDefinition) IsTestnet() bool {
	return d.Network == NetworkTestnet
}

// Clone returns a deep copy so callers cannot alias the fallback slice.
func (d NetworkDefinition) Clone() NetworkDefinition {
	if d.FallbackRPCURLs != nil {
		d.FallbackRPCURLs = append([]string(nil), d.FallbackRPCURLs...)
	}
	return d
}
