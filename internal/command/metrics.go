package command

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics.
var (
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listbot_commands_total",
			Help: "Total number of dispatched commands by kind and outcome",
		},
		[]string{"command", "outcome"},
	)

	storeCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listbot_store_call_duration_seconds",
			Help:    "List store call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
