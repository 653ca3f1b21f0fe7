// Package walletkit builds the wallet-connection configuration consumed by the
// front-end wallet modal: app metadata, supported chains, wallet connectors and
// one lazily dialed RPC transport per chain.
package walletkit

import (
	"strconv"
	"time"

	"wallet_connector/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Logger is the logging surface walletkit needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// DefaultConfigParameters is the request passed to GetDefaultConfig.
type DefaultConfigParameters struct {
	AppName        string
	AppDescription string
	AppURL         string
	AppIcon        string

	// ProjectID is the WalletConnect Cloud project ID. It is not checked here;
	// connectors that need it fail at connection time when it is empty.
	ProjectID string

	// Chains in display order. At least one is required.
	Chains []entity.NetworkDefinition

	// Wallets overrides DefaultWalletGroups when non-empty.
	Wallets []WalletGroup

	// Transports overrides the RPC endpoints of a chain, keyed by chain ID.
	Transports map[uint64][]string

	SSR bool
}

type options struct {
	logger    Logger
	verifier  ProjectVerifier
	transport TransportSettings
}

// Option customises GetDefaultConfig.
type Option func(*options)

// WithLogger sets the logger used by the configuration and its transports.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProjectVerifier replaces the WalletConnect Cloud verifier.
func WithProjectVerifier(v ProjectVerifier) Option {
	return func(o *options) { o.verifier = v }
}

// WithTransportSettings sets dial and call limits for every chain transport.
func WithTransportSettings(s TransportSettings) Option {
	return func(o *options) { o.transport = s }
}

// Config is a fully formed wallet-connection configuration. It is never mutated
// after GetDefaultConfig returns and is safe for concurrent use.
type Config struct {
	appName        string
	appDescription string
	appURL         string
	appIcon        string
	projectID      string
	ssr            bool

	chains     []entity.NetworkDefinition
	connectors []entity.ConnectorInfo
	transports map[uint64]*Transport

	verifier ProjectVerifier
	logger   Logger
}

// GetDefaultConfig builds a Config with the default connectors and one transport per chain.
func GetDefaultConfig(params DefaultConfigParameters, opts ...Option) (*Config, error) {
	o := options{logger: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.verifier == nil {
		o.verifier = NewCloudVerifier(DefaultCloudBaseURL, 10*time.Second, time.Hour, o.logger)
	}

	if len(params.Chains) == 0 {
		return nil, ErrNoChains
	}

	cfg := &Config{
		appName:        params.AppName,
		appDescription: params.AppDescription,
		appURL:         params.AppURL,
		appIcon:        params.AppIcon,
		projectID:      params.ProjectID,
		ssr:            params.SSR,
		transports:     make(map[uint64]*Transport, len(params.Chains)),
		verifier:       o.verifier,
		logger:         o.logger,
	}

	for _, chain := range params.Chains {
		if _, dup := cfg.transports[chain.ChainID]; dup {
			o.logger.Warn("Chain listed more than once, keeping first occurrence", "chain_id", chain.ChainID, "name", chain.Name)
			continue
		}
		chain = chain.Clone()
		urls := chain.RPCURLs()
		if override, ok := params.Transports[chain.ChainID]; ok && len(override) > 0 {
			urls = override
		}
		cfg.chains = append(cfg.chains, chain)
		cfg.transports[chain.ChainID] = newTransport(chain, urls, o.transport, o.logger)
	}

	for chainID := range params.Transports {
		if _, ok := cfg.transports[chainID]; !ok {
			o.logger.Warn("Transport override for a chain that is not configured, ignoring", "chain_id", chainID)
		}
	}

	groups := params.Wallets
	if len(groups) == 0 {
		groups = DefaultWalletGroups()
	}
	cfg.connectors = connectorsForWallets(groups, o.logger)

	if cfg.projectID == "" {
		o.logger.Warn("No WalletConnect projectId configured; project-bound connectors will fail on connect")
	}
	return cfg, nil
}

func (c *Config) AppName() string        { return c.appName }
func (c *Config) AppDescription() string { return c.appDescription }
func (c *Config) AppURL() string         { return c.appURL }
func (c *Config) AppIcon() string        { return c.appIcon }
func (c *Config) ProjectID() string      { return c.projectID }
func (c *Config) SSR() bool              { return c.ssr }

// Identity returns the app name and project ID pair.
func (c *Config) Identity() entity.AppIdentity {
	return entity.AppIdentity{AppName: c.appName, ProjectID: c.projectID}
}

// Chains returns a copy of the configured chains in display order.
func (c *Config) Chains() []entity.NetworkDefinition {
	out := make([]entity.NetworkDefinition, len(c.chains))
	for i, chain := range c.chains {
		out[i] = chain.Clone()
	}
	return out
}

// Chain returns the configured chain with the given ID.
func (c *Config) Chain(chainID uint64) (entity.NetworkDefinition, bool) {
	for _, chain := range c.chains {
		if chain.ChainID == chainID {
			return chain.Clone(), true
		}
	}
	return entity.NetworkDefinition{}, false
}

// Connectors returns a copy of the wallet connectors in modal order.
func (c *Config) Connectors() []entity.ConnectorInfo {
	return append([]entity.ConnectorInfo(nil), c.connectors...)
}

// Connector returns the connector with the given ID.
func (c *Config) Connector(id string) (entity.ConnectorInfo, bool) {
	for _, conn := range c.connectors {
		if conn.ID == id {
			return conn, true
		}
	}
	return entity.ConnectorInfo{}, false
}

// Transport returns the transport of a configured chain.
func (c *Config) Transport(chainID uint64) (*Transport, bool) {
	t, ok := c.transports[chainID]
	return t, ok
}

// Close drops every open transport connection.
func (c *Config) Close() {
	for _, t := range c.transports {
		t.Close()
	}
}

type rpcURLsJSON struct {
	HTTP []string `json:"http"`
}

type explorerJSON struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type chainJSON struct {
	ID             uint64                  `json:"id"`
	Name           string                  `json:"name"`
	Identifier     string                  `json:"identifier"`
	NativeCurrency entity.NativeCurrency   `json:"nativeCurrency"`
	RPCURLs        map[string]rpcURLsJSON  `json:"rpcUrls"`
	BlockExplorers map[string]explorerJSON `json:"blockExplorers,omitempty"`
	Testnet        bool                    `json:"testnet"`
}

type configJSON struct {
	AppName        string                 `json:"appName"`
	AppDescription string                 `json:"appDescription,omitempty"`
	AppURL         string                 `json:"appUrl,omitempty"`
	AppIcon        string                 `json:"appIcon,omitempty"`
	ProjectID      string                 `json:"projectId"`
	Chains         []chainJSON            `json:"chains"`
	Connectors     []entity.ConnectorInfo `json:"connectors"`
	Transports     map[string][]string    `json:"transports"`
	SSR            bool                   `json:"ssr"`
}

// MarshalJSON renders the configuration in the shape the front-end wallet modal expects.
func (c *Config) MarshalJSON() ([]byte, error) {
	out := configJSON{
		AppName:        c.appName,
		AppDescription: c.appDescription,
		AppURL:         c.appURL,
		AppIcon:        c.appIcon,
		ProjectID:      c.projectID,
		Chains:         make([]chainJSON, 0, len(c.chains)),
		Connectors:     c.Connectors(),
		Transports:     make(map[string][]string, len(c.transports)),
		SSR:            c.ssr,
	}
	for _, chain := range c.chains {
		cj := chainJSON{
			ID:             chain.ChainID,
			Name:           chain.Name,
			Identifier:     chain.Identifier,
			NativeCurrency: chain.NativeCurrency,
			RPCURLs:        map[string]rpcURLsJSON{"default": {HTTP: chain.RPCURLs()}},
			Testnet:        chain.IsTestnet(),
		}
		if chain.BlockExplorerURL != "" {
			cj.BlockExplorers = map[string]explorerJSON{"default": {Name: chain.Name + " Explorer", URL: chain.BlockExplorerURL}}
		}
		out.Chains = append(out.Chains, cj)
		out.Transports[strconv.FormatUint(chain.ChainID, 10)] = c.transports[chain.ChainID].URLs()
	}
	return json.Marshal(out)
}
