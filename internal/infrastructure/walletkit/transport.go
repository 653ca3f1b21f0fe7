package walletkit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"wallet_connector/internal/domain/entity"
	"wallet_connector/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/time/rate"
)

// TransportSettings controls how chain transports reach their RPC endpoints.
type TransportSettings struct {
	ConnectionTimeout time.Duration
	CallTimeout       time.Duration
	DialRate          rate.Limit
	DialBurst         int
}

// DefaultTransportSettings returns the settings used when none are supplied.
func DefaultTransportSettings() TransportSettings {
	return TransportSettings{
		ConnectionTimeout: 10 * time.Second,
		CallTimeout:       10 * time.Second,
		DialRate:          rate.Limit(2),
		DialBurst:         4,
	}
}

func (s TransportSettings) withDefaults() TransportSettings {
	d := DefaultTransportSettings()
	if s.ConnectionTimeout <= 0 {
		s.ConnectionTimeout = d.ConnectionTimeout
	}
	if s.CallTimeout <= 0 {
		s.CallTimeout = d.CallTimeout
	}
	if s.DialRate <= 0 {
		s.DialRate = d.DialRate
	}
	if s.DialBurst <= 0 {
		s.DialBurst = d.DialBurst
	}
	return s
}

// Transport is the RPC access for one chain. Nothing is dialed until Client is called.
type Transport struct {
	chain    entity.NetworkDefinition
	urls     []string
	settings TransportSettings
	limiter  *rate.Limiter
	logger   Logger

	// dialMu serialises dials; mu only guards the published connection.
	dialMu    sync.Mutex
	mu        sync.Mutex
	client    *ethclient.Client
	activeURL string
	closes    uint64
}

func newTransport(chain entity.NetworkDefinition, urls []string, settings TransportSettings, logger Logger) *Transport {
	settings = settings.withDefaults()
	return &Transport{
		chain:    chain,
		urls:     append([]string(nil), urls...),
		settings: settings,
		limiter:  rate.NewLimiter(settings.DialRate, settings.DialBurst),
		logger:   logger,
	}
}

// ChainID returns the chain this transport serves.
func (t *Transport) ChainID() uint64 {
	return t.chain.ChainID
}

// URLs returns the RPC endpoints in dial order.
func (t *Transport) URLs() []string {
	return append([]string(nil), t.urls...)
}

// ActiveURL returns the endpoint of the current connection, or "" when not connected.
func (t *Transport) ActiveURL() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.activeURL
}

// CallTimeout is the per-call timeout applied to reads through this transport.
func (t *Transport) CallTimeout() time.Duration {
	return t.settings.CallTimeout
}

// Client returns a connected client, dialing the endpoints in order on first use.
// Every endpoint must report the expected chain ID before it is accepted.
// Concurrent callers share a single dial.
func (t *Transport) Client(ctx context.Context) (*ethclient.Client, error) {
	if client, _ := t.connected(); client != nil {
		return client, nil
	}

	t.dialMu.Lock()
	defer t.dialMu.Unlock()

	client, closes := t.connected()
	if client != nil {
		return client, nil
	}
	if len(t.urls) == 0 {
		return nil, fmt.Errorf("network %s: %w", t.chain.Name, ErrNoRPCURLs)
	}

	chainLabel := strconv.FormatUint(t.chain.ChainID, 10)
	var lastErr error
	for _, rpcURL := range t.urls {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("dial limiter for network %s: %w", t.chain.Name, err)
		}

		client, err := t.dial(ctx, rpcURL)
		metrics.RPCDials.WithLabelValues(chainLabel, metrics.Result(err)).Inc()
		if err != nil {
			t.logger.Warn("RPC endpoint rejected", "network", t.chain.Identifier, "rpc", rpcURL, "error", err)
			lastErr = err
			continue
		}

		if !t.publish(client, rpcURL, closes) {
			client.Close()
			return nil, fmt.Errorf("network %s: %w", t.chain.Name, ErrTransportClosed)
		}
		t.logger.Info("Chain transport connected", "network", t.chain.Identifier, "rpc", rpcURL)
		return client, nil
	}
	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", t.chain.Name, lastErr)
}

func (t *Transport) connected() (*ethclient.Client, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client, t.closes
}

// publish stores the dialed client unless Close ran since the dial started.
func (t *Transport) publish(client *ethclient.Client, rpcURL string, closes uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closes != closes {
		return false
	}
	t.client = client
	t.activeURL = rpcURL
	return true
}

func (t *Transport) dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, t.settings.ConnectionTimeout)
	defer cancel()

	client, err := ethclient.DialContext(dialCtx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	callCtx, callCancel := context.WithTimeout(ctx, t.settings.CallTimeout)
	defer callCancel()

	remoteID, err := client.ChainID(callCtx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to verify chainID for %s: %w", rpcURL, err)
	}
	if !remoteID.IsUint64() || remoteID.Uint64() != t.chain.ChainID {
		client.Close()
		return nil, fmt.Errorf("%w for %s: expected %d, got %s", ErrChainIDMismatch, rpcURL, t.chain.ChainID, remoteID)
	}
	return client, nil
}

// Close drops the current connection, if any, and fails a dial in flight.
// A later Client call dials again.
func (t *Transport) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closes++
	if t.client != nil {
		t.client.Close()
		t.client = nil
		t.activeURL = ""
	}
}
