package walletkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"wallet_connector/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/time/rate"
)

// rpcStub is a minimal JSON-RPC endpoint answering the calls walletkit makes.
type rpcStub struct {
	*httptest.Server
	chainID  uint64
	requests atomic.Int64
}

func newRPCStub(t *testing.T, chainID uint64) *rpcStub {
	t.Helper()
	stub := &rpcStub{chainID: chainID}
	stub.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.requests.Add(1)
		var req struct {
			ID     any    `json:"id"`
			Method string `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		switch req.Method {
		case "eth_chainId":
			resp["result"] = hexutil.EncodeUint64(stub.chainID)
		case "eth_blockNumber":
			resp["result"] = "0x10"
		case "eth_gasPrice":
			resp["result"] = "0x3b9aca00"
		default:
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(stub.Close)
	return stub
}

func testChain(id uint64, identifier string, urls ...string) entity.NetworkDefinition {
	def := entity.NetworkDefinition{
		ChainID:        id,
		Name:           identifier + " network",
		Identifier:     identifier,
		NativeCurrency: entity.NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		Network:        entity.NetworkTestnet,
	}
	if len(urls) > 0 {
		def.PrimaryRPCURL = urls[0]
		def.FallbackRPCURLs = urls[1:]
	}
	return def
}

func fastTransports() Option {
	return WithTransportSettings(TransportSettings{
		ConnectionTimeout: 2 * time.Second,
		CallTimeout:       2 * time.Second,
		DialRate:          rate.Inf,
		DialBurst:         1,
	})
}

type fakeVerifier struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeVerifier) VerifyProject(_ context.Context, projectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, projectID)
	return f.err
}

func (f *fakeVerifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
