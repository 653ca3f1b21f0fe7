package port

import "wallet_connector/internal/domain/entity"

// EnvSource looks up process environment values.
type EnvSource interface {
	LookupEnv(key string) (string, bool)
}

// IdentityProvider supplies the application identity used to build the wallet configuration.
type IdentityProvider interface {
	Identity() entity.AppIdentity
}
