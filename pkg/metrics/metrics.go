package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LedgerConnects = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "farmledger", Name: "ledger_connect_attempts_total", Help: "Number of ledger connection attempts by strategy and outcome."},
		[]string{"strategy", "outcome"},
	)
	LedgerTransactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "farmledger", Name: "ledger_transactions_total", Help: "Number of chaincode transactions by resource, operation and outcome."},
		[]string{"resource", "op", "outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "farmledger", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "farmledger", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(LedgerConnects)
	reg.MustRegister(LedgerTransactions)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
