package entity

// AppIdentity identifies the dApp to wallets and to the WalletConnect infrastructure.
type AppIdentity struct {
	AppName string `json:"appName"`
	// ProjectID is the WalletConnect Cloud project identifier. It may be empty.
	ProjectID string `json:"projectId"`
}
