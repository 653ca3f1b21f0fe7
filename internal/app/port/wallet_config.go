package port

import "wallet_connector/internal/infrastructure/walletkit"

// WalletConfigSource hands out the process-wide wallet-connection configuration.
type WalletConfigSource interface {
	Build() (*walletkit.Config, error)
}
