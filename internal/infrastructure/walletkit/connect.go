package walletkit

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"wallet_connector/internal/pkg/metrics"
	"wallet_connector/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/sync/errgroup"
)

// maxParallelChecks bounds CheckChains fan-out.
const maxParallelChecks = 8

// Connection is the result of a successful Connect.
type Connection struct {
	ConnectorID string
	ChainID     uint64
	RPCURL      string
	Client      *ethclient.Client
}

// Connect prepares a wallet connection through the given connector on the given chain.
// This is where a missing or rejected project ID surfaces.
func (c *Config) Connect(ctx context.Context, connectorID string, chainID uint64) (conn *Connection, err error) {
	defer func() {
		metrics.ConnectAttempts.WithLabelValues(connectorID, strconv.FormatUint(chainID, 10), metrics.Result(err)).Inc()
	}()

	connector, ok := c.Connector(connectorID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConnector, connectorID)
	}
	transport, ok := c.transports[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrChainNotConfigured, chainID)
	}

	if connector.RequiresProjectID {
		if c.projectID == "" {
			c.logger.Error("Connector requires a WalletConnect projectId", "connector", connectorID)
			return nil, ErrMissingProjectID
		}
		if err := c.verifier.VerifyProject(ctx, c.projectID); err != nil {
			return nil, fmt.Errorf("connector %s: %w", connectorID, err)
		}
	}

	client, err := transport.Client(ctx)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Wallet connector ready", "connector", connectorID, "chain_id", chainID)
	return &Connection{
		ConnectorID: connectorID,
		ChainID:     chainID,
		RPCURL:      transport.ActiveURL(),
		Client:      client,
	}, nil
}

// ChainStatus is a point-in-time view of one configured chain.
type ChainStatus struct {
	ChainID      uint64   `json:"chainId"`
	Identifier   string   `json:"identifier"`
	Name         string   `json:"name"`
	RPCURL       string   `json:"rpcUrl,omitempty"`
	BlockNumber  uint64   `json:"blockNumber,omitempty"`
	GasPriceWei  *big.Int `json:"gasPriceWei,omitempty"`
	GasPriceGwei string   `json:"gasPriceGwei,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// OK reports whether the status was read without error.
func (s ChainStatus) OK() bool {
	return s.Error == ""
}

// ChainStatus dials the chain transport if needed and reads the head block and gas price.
func (c *Config) ChainStatus(ctx context.Context, chainID uint64) (ChainStatus, error) {
	chain, ok := c.Chain(chainID)
	if !ok {
		return ChainStatus{ChainID: chainID}, fmt.Errorf("%w: %d", ErrChainNotConfigured, chainID)
	}
	status := ChainStatus{ChainID: chain.ChainID, Identifier: chain.Identifier, Name: chain.Name}

	transport := c.transports[chainID]
	client, err := transport.Client(ctx)
	if err != nil {
		status.Error = err.Error()
		return status, err
	}
	status.RPCURL = transport.ActiveURL()

	callCtx, cancel := context.WithTimeout(ctx, transport.CallTimeout())
	defer cancel()

	block, err := client.BlockNumber(callCtx)
	if err != nil {
		err = fmt.Errorf("failed to read block number on %s: %w", chain.Name, err)
		status.Error = err.Error()
		return status, err
	}
	status.BlockNumber = block

	gasPrice, err := client.SuggestGasPrice(callCtx)
	if err != nil {
		err = fmt.Errorf("failed to read gas price on %s: %w", chain.Name, err)
		status.Error = err.Error()
		return status, err
	}
	status.GasPriceWei = gasPrice
	status.GasPriceGwei = utils.FormatGwei(gasPrice)
	return status, nil
}

// CheckChains reads the status of every configured chain concurrently.
// Results are in chain order; per-chain failures are reported in ChainStatus.Error.
func (c *Config) CheckChains(ctx context.Context) []ChainStatus {
	results := make([]ChainStatus, len(c.chains))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelChecks)
	for i, chain := range c.chains {
		i, chain := i, chain
		g.Go(func() error {
			status, err := c.ChainStatus(gctx, chain.ChainID)
			if err != nil {
				c.logger.Warn("Chain status check failed", "chain_id", chain.ChainID, "error", err)
			}
			results[i] = status
			return nil
		})
	}
	_ = g.Wait()
	return results
}
