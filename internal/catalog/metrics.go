package catalog

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "moviedb"
	metricsSubsystem = "catalog"
)

// Outcome label values.
const (
	outcomeOK          = "ok"
	outcomeUnavailable = "unavailable"
	outcomeMalformed   = "malformed"
)

var (
	// catalogReqs counts remote calls by endpoint ("search", "movie") and outcome.
	catalogReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "Total number of remote catalog requests.",
		},
		[]string{"endpoint", "outcome"},
	)

	// catalogLat records remote call latency in seconds by endpoint.
	catalogLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Duration of remote catalog requests in seconds.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 4, 8, 16},
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(catalogReqs, catalogLat)
}

func observe(endpoint, outcome string, d time.Duration) {
	catalogReqs.WithLabelValues(endpoint, outcome).Inc()
	catalogLat.WithLabelValues(endpoint).Observe(d.Seconds())
}
