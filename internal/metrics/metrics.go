package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chorecoin_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chorecoin_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "route"})

	LedgerEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chorecoin_ledger_entries_total",
		Help: "Ledger entries committed, by kind",
	}, []string{"kind"})

	ClaimsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chorecoin_claims_rejected_total",
		Help: "Reward claims rejected for insufficient points",
	})
)
