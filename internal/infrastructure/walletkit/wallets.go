package walletkit

import "wallet_connector/internal/domain/entity"

// Wallet describes a wallet offered in the connection modal.
type Wallet struct {
	ID                string
	Name              string
	Type              entity.ConnectorType
	RequiresProjectID bool
}

// WalletGroup is a titled section of the connection modal.
type WalletGroup struct {
	GroupName string
	Wallets   []Wallet
}

// Built-in wallets. Rainbow and MetaMask fall back to WalletConnect when no
// injected provider is present, so they need a project ID as well.
var ( //nolint:gochecknoglobals
	RainbowWallet       = Wallet{ID: "rainbow", Name: "Rainbow", Type: entity.ConnectorInjected, RequiresProjectID: true}
	CoinbaseWallet      = Wallet{ID: "coinbase", Name: "Coinbase Wallet", Type: entity.ConnectorCoinbaseWallet}
	MetaMaskWallet      = Wallet{ID: "metaMask", Name: "MetaMask", Type: entity.ConnectorInjected, RequiresProjectID: true}
	WalletConnectWallet = Wallet{ID: "walletConnect", Name: "WalletConnect", Type: entity.ConnectorWalletConnect, RequiresProjectID: true}
)

// DefaultWalletGroups returns the wallet list used when none is supplied.
func DefaultWalletGroups() []WalletGroup {
	return []WalletGroup{
		{
			GroupName: "Popular",
			Wallets:   []Wallet{RainbowWallet, CoinbaseWallet, MetaMaskWallet, WalletConnectWallet},
		},
	}
}

func connectorsForWallets(groups []WalletGroup, logger Logger) []entity.ConnectorInfo {
	seen := make(map[string]struct{})
	var connectors []entity.ConnectorInfo
	for _, group := range groups {
		for _, w := range group.Wallets {
			if _, dup := seen[w.ID]; dup {
				logger.Warn("Wallet listed more than once, keeping first occurrence", "wallet", w.ID, "group", group.GroupName)
				continue
			}
			seen[w.ID] = struct{}{}
			connectors = append(connectors, entity.ConnectorInfo{
				ID:                w.ID,
				Name:              w.Name,
				Type:              w.Type,
				Group:             group.GroupName,
				RequiresProjectID: w.RequiresProjectID,
			})
		}
	}
	return connectors
}
