package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RegistryBuilds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bwmfi_param_pairs_built_total",
			Help: "Total number of indicator/strategy parameter pairs built.",
		},
	)

	RegistryLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bwmfi_param_lookups_total",
			Help: "Parameter lookups by symbol, timeframe and result (hit or miss).",
		},
		[]string{"symbol", "timeframe", "result"},
	)
)

func init() {
	prometheus.MustRegister(RegistryBuilds, RegistryLookups)
}
