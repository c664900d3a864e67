package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocketfarm_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pocketfarm_http_request_duration_seconds",
			Help:    "HTTP request latency distribution.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pocketfarm_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)
)

// Game Metrics
var (
	ActionsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocketfarm_actions_applied_total",
			Help: "Successfully applied reducer actions by action name.",
		},
		[]string{"action"},
	)

	ActionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocketfarm_actions_rejected_total",
			Help: "Reducer actions rejected by a precondition, by action name.",
		},
		[]string{"action"},
	)

	ProduceSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pocketfarm_produce_sold_coins_total",
			Help: "Total coin income from selling produce.",
		},
	)
)

// Sync Metrics
var (
	SyncFlushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocketfarm_sync_flushes_total",
			Help: "Remote snapshot flushes by result (success/failure).",
		},
		[]string{"result"},
	)

	SyncPulls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pocketfarm_sync_pulls_total",
			Help: "Remote snapshot pulls by result (applied/suppressed/failure).",
		},
		[]string{"result"},
	)
)
