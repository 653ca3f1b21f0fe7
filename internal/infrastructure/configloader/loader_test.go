package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "logging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAppName, cfg.App.Name)
	assert.Equal(t, DefaultProjectIDEnv, cfg.Wallet.ProjectIDEnv)
	assert.Equal(t, []string{"sepolia", "bsc_testnet", "polygon_mumbai"}, cfg.Wallet.Chains)
	assert.Equal(t, "https://explorer-api.walletconnect.com", cfg.Wallet.CloudBaseURL)
	assert.Equal(t, int64(10000), cfg.Wallet.RequestTimeoutMillis)
	assert.Equal(t, 60, cfg.Wallet.VerificationCacheTTLMinutes)
	assert.Equal(t, 10, cfg.RPC.ConnectionTimeoutSeconds)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/swagger", cfg.Swagger.Path)
}

func TestLoadKeepsExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
app:
  name: Other DAO
  url: https://other.example
wallet:
  projectIdEnv: OTHER_PROJECT_ID
  chains: [polygon_mumbai, sepolia]
  ssr: true
rpc:
  dialRatePerSecond: 0.5
  dialBurst: 1
server:
  port: "9090"
  allowedOrigins: ["https://other.example"]
`))
	require.NoError(t, err)

	assert.Equal(t, "Other DAO", cfg.App.Name)
	assert.Equal(t, "OTHER_PROJECT_ID", cfg.Wallet.ProjectIDEnv)
	assert.Equal(t, []string{"polygon_mumbai", "sepolia"}, cfg.Wallet.Chains)
	assert.True(t, cfg.Wallet.SSR)
	assert.Equal(t, 0.5, cfg.RPC.DialRatePerSecond)
	assert.Equal(t, 1, cfg.RPC.DialBurst)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://other.example"}, cfg.Server.AllowedOrigins)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "wallet: [not, a, map]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal config data")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadOrDefault(writeConfig(t, "wallet: [not, a, map]\n"))
	assert.Error(t, err)
}

func TestDefaultChainsAreNotShared(t *testing.T) {
	a := Default()
	a.Wallet.Chains[0] = "mutated"
	assert.Equal(t, "sepolia", Default().Wallet.Chains[0])
}
