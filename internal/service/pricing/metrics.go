package pricing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_quotes_total",
			Help: "Total number of price quotes by rate source",
		},
		[]string{"source"},
	)

	ruleCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_rule_cache_total",
			Help: "Pricing rule cache lookups by result",
		},
		[]string{"result"},
	)
)
