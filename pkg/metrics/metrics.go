package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "schemes", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "schemes", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	SchemeMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "schemes", Name: "mutations_total", Help: "Committed repository mutations by operation."},
		[]string{"op"},
	)
	StoreWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "schemes", Name: "store_writes_total", Help: "Write-through saves by store driver and result."},
		[]string{"driver", "result"},
	)
	SearchEvaluations = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "schemes", Name: "search_evaluations_total", Help: "Debounced filter evaluations that delivered a result."},
	)
	SearchSuperseded = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "schemes", Name: "search_superseded_total", Help: "Pending filter evaluations cancelled by a newer query or record change."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(SchemeMutations)
	reg.MustRegister(StoreWrites)
	reg.MustRegister(SearchEvaluations)
	reg.MustRegister(SearchSuperseded)
}
