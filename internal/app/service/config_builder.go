package service

import (
	"sync"
	"time"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/app/provider"
	"wallet_connector/internal/infrastructure/configloader"
	networkdefinition "wallet_connector/internal/infrastructure/network/definition"
	"wallet_connector/internal/infrastructure/walletkit"
	"wallet_connector/internal/pkg/metrics"

	"golang.org/x/time/rate"
)

// BuilderParams carries the optional app metadata and factory options.
type BuilderParams struct {
	AppDescription string
	AppURL         string
	AppIcon        string
	SSR            bool
	Options        []walletkit.Option
}

// ConfigBuilder produces the process-wide wallet-connection configuration.
// The first Build reads the identity, resolves the chains and calls the factory;
// every later Build returns the same result without touching the environment again.
type ConfigBuilder struct {
	identity port.IdentityProvider
	networks port.NetworkDefinitionProvider
	params   BuilderParams
	logger   port.Logger

	once sync.Once
	cfg  *walletkit.Config
	err  error
}

var _ port.WalletConfigSource = (*ConfigBuilder)(nil)

// NewConfigBuilder creates a new ConfigBuilder.
func NewConfigBuilder(
	identity port.IdentityProvider,
	networks port.NetworkDefinitionProvider,
	params BuilderParams,
	logger port.Logger,
) *ConfigBuilder {
	return &ConfigBuilder{
		identity: identity,
		networks: networks,
		params:   params,
		logger:   logger,
	}
}

// NewConfigBuilderFromConfig wires a ConfigBuilder from the loaded application config.
func NewConfigBuilderFromConfig(cfg *configloader.Config, env port.EnvSource, logger port.Logger) *ConfigBuilder {
	identity := provider.NewEnvIdentityProvider(cfg.App.Name, cfg.Wallet.ProjectIDEnv, env, logger)
	networks := networkdefinition.NewNetworkDefinitionProvider(logger, cfg.Wallet.Chains)

	verifier := walletkit.NewCloudVerifier(
		cfg.Wallet.CloudBaseURL,
		time.Duration(cfg.Wallet.RequestTimeoutMillis)*time.Millisecond,
		time.Duration(cfg.Wallet.VerificationCacheTTLMinutes)*time.Minute,
		logger,
	)

	return NewConfigBuilder(identity, networks, BuilderParams{
		AppDescription: cfg.App.Description,
		AppURL:         cfg.App.URL,
		AppIcon:        cfg.App.Icon,
		SSR:            cfg.Wallet.SSR,
		Options: []walletkit.Option{
			walletkit.WithLogger(logger),
			walletkit.WithProjectVerifier(verifier),
			walletkit.WithTransportSettings(walletkit.TransportSettings{
				ConnectionTimeout: time.Duration(cfg.RPC.ConnectionTimeoutSeconds) * time.Second,
				CallTimeout:       time.Duration(cfg.RPC.CallTimeoutSeconds) * time.Second,
				DialRate:          rate.Limit(cfg.RPC.DialRatePerSecond),
				DialBurst:         cfg.RPC.DialBurst,
			}),
		},
	}, logger)
}

// Build returns the wallet-connection configuration, constructing it on first call.
// Factory errors are returned as is.
func (b *ConfigBuilder) Build() (*walletkit.Config, error) {
	b.once.Do(func() {
		identity := b.identity.Identity()
		chains := b.networks.GetAllNetworkDefinitions()

		b.cfg, b.err = walletkit.GetDefaultConfig(walletkit.DefaultConfigParameters{
			AppName:        identity.AppName,
			AppDescription: b.params.AppDescription,
			AppURL:         b.params.AppURL,
			AppIcon:        b.params.AppIcon,
			ProjectID:      identity.ProjectID,
			Chains:         chains,
			SSR:            b.params.SSR,
		}, b.params.Options...)

		metrics.ConfigBuilds.WithLabelValues(metrics.Result(b.err)).Inc()
		if b.err != nil {
			b.logger.Error("Wallet configuration build failed", "error", b.err)
			return
		}
		b.logger.Info("Wallet configuration built", "app", identity.AppName, "chains", len(chains), "connectors", len(b.cfg.Connectors()))
	})
	return b.cfg, b.err
}

// Networks returns the provider of the chains this builder configures.
func (b *ConfigBuilder) Networks() port.NetworkDefinitionProvider {
	return b.networks
}

// MustBuild is like Build but panics on error.
func (b *ConfigBuilder) MustBuild() *walletkit.Config {
	cfg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return cfg
}
