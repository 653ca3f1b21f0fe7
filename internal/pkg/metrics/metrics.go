package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wallet_connector"

var (
	// ConnectAttempts counts wallet connection attempts by connector, chain and outcome.
	ConnectAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "connect_attempts_total",
		Help:      "Wallet connection attempts by connector, chain and result.",
	}, []string{"connector", "chain_id", "result"})

	// RPCDials counts transport dial attempts per RPC endpoint.
	RPCDials = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_dials_total",
		Help:      "Chain transport dial attempts by chain and result.",
	}, []string{"chain_id", "result"})

	// ProjectVerifications counts WalletConnect Cloud project checks, split by cache hits.
	ProjectVerifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_verifications_total",
		Help:      "WalletConnect Cloud project verifications by source and result.",
	}, []string{"source", "result"})

	// ConfigBuilds counts wallet configuration builds. It should never exceed one per process.
	ConfigBuilds = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "config_builds_total",
		Help:      "Wallet-connection configuration builds by result.",
	}, []string{"result"})
)

var registerOnce sync.Once

// MustRegisterMetrics registers every collector with reg. Calls after the first are no-ops.
func MustRegisterMetrics(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(ConnectAttempts, RPCDials, ProjectVerifications, ConfigBuilds)
	})
}

// Result maps an error to the "result" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
