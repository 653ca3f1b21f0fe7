package entity

// ConnectorType is the transport a wallet connector uses to reach the wallet.
type ConnectorType string

const (
	ConnectorInjected       ConnectorType = "injected"
	ConnectorWalletConnect  ConnectorType = "walletConnect"
	ConnectorCoinbaseWallet ConnectorType = "coinbaseWallet"
)

// ConnectorInfo describes one wallet option offered to the end user.
type ConnectorInfo struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Type              ConnectorType `json:"type"`
	Group             string        `json:"group"`
	RequiresProjectID bool          `json:"requiresProjectId"`
}
