package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_atlas_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deal_atlas_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_atlas_sync_runs_total",
			Help: "Total number of CRM sync runs by outcome",
		},
		[]string{"status"},
	)

	SyncDealsImported = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "deal_atlas_sync_deals_imported",
			Help: "Number of deals imported by the last successful sync run",
		},
	)
)
