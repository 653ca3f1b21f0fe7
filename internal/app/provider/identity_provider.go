package provider

import (
	"os"
	"sync"

	"wallet_connector/internal/app/port"
	"wallet_connector/internal/domain/entity"
)

// OSEnv reads the real process environment.
type OSEnv struct{}

// LookupEnv implements port.EnvSource.
func (OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

type envIdentityProvider struct {
	appName      string
	projectIDEnv string
	env          port.EnvSource
	logger       port.Logger

	once     sync.Once
	identity entity.AppIdentity
}

// NewEnvIdentityProvider creates an IdentityProvider whose project ID comes from the
// environment variable projectIDEnv. The variable is read on the first Identity call only.
func NewEnvIdentityProvider(appName, projectIDEnv string, env port.EnvSource, logger port.Logger) port.IdentityProvider {
	if env == nil {
		env = OSEnv{}
	}
	return &envIdentityProvider{
		appName:      appName,
		projectIDEnv: projectIDEnv,
		env:          env,
		logger:       logger,
	}
}

// Identity returns the app identity. An absent variable yields an empty project ID.
func (p *envIdentityProvider) Identity() entity.AppIdentity {
	p.once.Do(func() {
		projectID, found := p.env.LookupEnv(p.projectIDEnv)
		p.identity = entity.AppIdentity{AppName: p.appName, ProjectID: projectID}
		p.logger.Debug("Project identifier read from environment", "variable", p.projectIDEnv, "present", found && projectID != "")
	})
	return p.identity
}
