package tracking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var trackingEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tracking_events_total",
		Help: "Total number of forwarder tracking events by code and result",
	},
	[]string{"code", "result"},
)
