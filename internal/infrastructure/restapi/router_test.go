package restapi

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"wallet_connector/internal/domain/entity"
	networkdefinition "wallet_connector/internal/infrastructure/network/definition"
	"wallet_connector/internal/infrastructure/walletkit"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type staticSource struct {
	cfg *walletkit.Config
	err error
}

func (s staticSource) Build() (*walletkit.Config, error) { return s.cfg, s.err }

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// newSepoliaRPC answers eth_chainId, eth_blockNumber and eth_gasPrice for Sepolia.
func newSepoliaRPC(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     any    `json:"id"`
			Method string `json:"method"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		results := map[string]string{
			"eth_chainId":     "0xaa36a7",
			"eth_blockNumber": "0x2a",
			"eth_gasPrice":    "0x77359400",
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": results[req.Method]})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestConfig(t *testing.T, sepoliaRPC string) *walletkit.Config {
	t.Helper()
	sepolia := networkdefinition.Sepolia.Clone()
	sepolia.PrimaryRPCURL = sepoliaRPC
	sepolia.FallbackRPCURLs = nil

	bsc := networkdefinition.BSCTestnet.Clone()
	bsc.PrimaryRPCURL = "http://127.0.0.1:1"
	bsc.FallbackRPCURLs = nil

	cfg, err := walletkit.GetDefaultConfig(walletkit.DefaultConfigParameters{
		AppName:   "Charity DAO",
		ProjectID: "abc",
		Chains:    []entity.NetworkDefinition{sepolia, bsc, networkdefinition.PolygonMumbai},
	})
	require.NoError(t, err)
	t.Cleanup(cfg.Close)
	return cfg
}

func defaultNetworks() *networkdefinition.NetworkDefinitionProvider {
	return networkdefinition.NewNetworkDefinitionProvider(nopLogger{}, networkdefinition.DefaultChainIdentifiers)
}

func perform(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rpc := newSepoliaRPC(t)
	cfg := newTestConfig(t, rpc.URL)

	core, logs := observer.New(zap.InfoLevel)
	router := SetupRouter(NewWalletConfigHandler(staticSource{cfg: cfg}, defaultNetworks(), nopLogger{}), RouterOptions{
		AccessLog: zap.New(core),
		Metrics:   promhttp.Handler(),
	})

	t.Run("wallet config", func(t *testing.T) {
		w := perform(router, "/api/v1/wallet-config")
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Charity DAO", body["appName"])
		assert.Equal(t, "abc", body["projectId"])

		chains := body["chains"].([]any)
		require.Len(t, chains, 3)
		assert.Equal(t, float64(11155111), chains[0].(map[string]any)["id"])
		assert.Equal(t, float64(97), chains[1].(map[string]any)["id"])
		assert.Equal(t, float64(80001), chains[2].(map[string]any)["id"])
	})

	t.Run("networks", func(t *testing.T) {
		w := perform(router, "/api/v1/networks")
		require.Equal(t, http.StatusOK, w.Code)

		var body NetworksResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Networks, 3)
		assert.Equal(t, "sepolia", body.Networks[0].Identifier)
		assert.Equal(t, "polygon_mumbai", body.Networks[2].Identifier)
	})

	t.Run("single network", func(t *testing.T) {
		w := perform(router, "/api/v1/networks/bsc_testnet")
		require.Equal(t, http.StatusOK, w.Code)
		var body entity.NetworkDefinition
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, uint64(97), body.ChainID)

		w = perform(router, "/api/v1/networks/Sepolia")
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, rpc.URL, body.PrimaryRPCURL, "answers with the built config's chain")
	})

	t.Run("known but inactive network", func(t *testing.T) {
		for _, path := range []string{"/api/v1/networks/ethereum", "/api/v1/networks/polygon_amoy/status", "/api/v1/networks/nope"} {
			w := perform(router, path)
			assert.Equal(t, http.StatusNotFound, w.Code, path)
			assert.Contains(t, w.Body.String(), "is not configured", path)
		}
	})

	t.Run("network status", func(t *testing.T) {
		w := perform(router, "/api/v1/networks/sepolia/status")
		require.Equal(t, http.StatusOK, w.Code)
		var status walletkit.ChainStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, uint64(42), status.BlockNumber)
		assert.Equal(t, "2", status.GasPriceGwei)

		w = perform(router, "/api/v1/networks/bsc_testnet/status")
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("connectors", func(t *testing.T) {
		w := perform(router, "/api/v1/connectors")
		require.Equal(t, http.StatusOK, w.Code)
		var body ConnectorsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Connectors, 4)
	})

	t.Run("health and metrics", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, perform(router, "/healthz").Code)
		w := perform(router, "/metrics")
		require.Equal(t, http.StatusOK, w.Code)
		data, _ := io.ReadAll(w.Body)
		assert.NotEmpty(t, data)
	})

	assert.NotZero(t, logs.FilterMessage("HTTP request").Len())
}

func TestRouterBuildFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := SetupRouter(NewWalletConfigHandler(staticSource{err: errors.New("no chains")}, defaultNetworks(), nopLogger{}), RouterOptions{})

	for _, path := range []string{"/api/v1/wallet-config", "/api/v1/networks", "/api/v1/networks/sepolia", "/api/v1/connectors"} {
		w := perform(router, path)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Contains(t, w.Body.String(), "no chains", path)
	}
}

func TestRouterCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := newTestConfig(t, "http://127.0.0.1:1")
	router := SetupRouter(NewWalletConfigHandler(staticSource{cfg: cfg}, defaultNetworks(), nopLogger{}), RouterOptions{
		AllowedOrigins: []string{"https://charity.example"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/networks", nil)
	req.Header.Set("Origin", "https://charity.example")
	router.ServeHTTP(w, req)
	assert.Equal(t, "https://charity.example", w.Header().Get("Access-Control-Allow-Origin"))
}
