package walletkit

import "errors"

var (
	// ErrNoChains is returned by GetDefaultConfig when no chains are supplied.
	ErrNoChains = errors.New("walletkit: at least one chain is required")
	// ErrMissingProjectID is returned when a connector needs a WalletConnect Cloud project ID and none was configured.
	ErrMissingProjectID = errors.New("walletkit: no projectId found, every dApp must provide a WalletConnect Cloud projectId")
	// ErrInvalidProjectID is returned when WalletConnect Cloud rejects the project ID.
	ErrInvalidProjectID = errors.New("walletkit: projectId rejected by WalletConnect Cloud")
	// ErrChainNotConfigured is returned for a chain ID that is not part of the configuration.
	ErrChainNotConfigured = errors.New("walletkit: chain not configured")
	// ErrUnknownConnector is returned for a connector ID that is not part of the configuration.
	ErrUnknownConnector = errors.New("walletkit: unknown connector")
	// ErrChainIDMismatch is returned when an RPC endpoint reports a different chain than expected.
	ErrChainIDMismatch = errors.New("walletkit: rpc endpoint chain id mismatch")
	// ErrTransportClosed is returned by a dial that was still in flight when the transport was closed.
	ErrTransportClosed = errors.New("walletkit: transport closed during dial")
	// ErrNoRPCURLs is returned when a transport has nothing to dial.
	ErrNoRPCURLs = errors.New("walletkit: no rpc urls")
)
