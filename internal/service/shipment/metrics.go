package shipment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	shipmentsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipments_created_total",
			Help: "Total number of created shipment orders",
		},
		[]string{"service_type"},
	)

	statusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipment_status_transitions_total",
			Help: "Total number of applied shipment status transitions",
		},
		[]string{"status"},
	)
)
