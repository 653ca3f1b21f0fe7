package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	networkdefinition "wallet_connector/internal/infrastructure/network/definition"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAppName is the dApp name shown by wallets during connection.
	DefaultAppName = "Charity DAO"
	// DefaultProjectIDEnv is the environment variable holding the WalletConnect Cloud project ID.
	DefaultProjectIDEnv = "VITE_PROJECT_ID"
)

// AppConfig holds the metadata wallets display for the dApp.
type AppConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Icon        string `yaml:"icon"`
}

// WalletConfig holds wallet-connection specific configurations.
type WalletConfig struct {
	ProjectIDEnv                string   `yaml:"projectIdEnv"`
	Chains                      []string `yaml:"chains"` // network identifiers, in display order
	SSR                         bool     `yaml:"ssr"`
	CloudBaseURL                string   `yaml:"walletConnectCloudURL"`
	RequestTimeoutMillis        int64    `yaml:"requestTimeoutMillis"`
	VerificationCacheTTLMinutes int      `yaml:"verificationCacheTTLMinutes"`
}

// RPCConfig holds settings for the lazily dialed chain transports.
type RPCConfig struct {
	ConnectionTimeoutSeconds int     `yaml:"connectionTimeoutSeconds"`
	CallTimeoutSeconds       int     `yaml:"callTimeoutSeconds"`
	DialRatePerSecond        float64 `yaml:"dialRatePerSecond"`
	DialBurst                int     `yaml:"dialBurst"`
}

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port           string   `yaml:"port"`
	ReadTimeout    int      `yaml:"readTimeout"`
	WriteTimeout   int      `yaml:"writeTimeout"`
	IdleTimeout    int      `yaml:"idleTimeout"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	SpecFile string `yaml:"specFile"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Wallet  WalletConfig  `yaml:"wallet"`
	RPC     RPCConfig     `yaml:"rpc"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Swagger SwaggerConfig `yaml:"swagger"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)
	logrus.Infof("Configuration loaded from %s", path)
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to the built-in defaults when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	logrus.Warnf("Config file %s not found, using built-in defaults", path)
	return Default(), nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = DefaultAppName
	}
	if cfg.Wallet.ProjectIDEnv == "" {
		cfg.Wallet.ProjectIDEnv = DefaultProjectIDEnv
	}
	if len(cfg.Wallet.Chains) == 0 {
		cfg.Wallet.Chains = append([]string(nil), networkdefinition.DefaultChainIdentifiers...)
		logrus.Infof("wallet.chains not set, defaulting to %v", cfg.Wallet.Chains)
	}
	if cfg.Wallet.CloudBaseURL == "" {
		cfg.Wallet.CloudBaseURL = "https://explorer-api.walletconnect.com"
	}
	if cfg.Wallet.RequestTimeoutMillis <= 0 {
		cfg.Wallet.RequestTimeoutMillis = 10000 // 10 seconds
	}
	if cfg.Wallet.VerificationCacheTTLMinutes <= 0 {
		cfg.Wallet.VerificationCacheTTLMinutes = 60
	}

	if cfg.RPC.ConnectionTimeoutSeconds <= 0 {
		cfg.RPC.ConnectionTimeoutSeconds = 10
	}
	if cfg.RPC.CallTimeoutSeconds <= 0 {
		cfg.RPC.CallTimeoutSeconds = 10
	}
	if cfg.RPC.DialRatePerSecond <= 0 {
		cfg.RPC.DialRatePerSecond = 2
	}
	if cfg.RPC.DialBurst <= 0 {
		cfg.RPC.DialBurst = 4
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = "/swagger"
	}
	if cfg.Swagger.SpecFile == "" {
		cfg.Swagger.SpecFile = "./docs/swagger.yaml"
	}
}
