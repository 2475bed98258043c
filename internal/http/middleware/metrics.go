// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// Metrics() instruments every request under the "moviedb_http" prefix. The
// path label is the registered route (e.g. /api/v1/movies/:id/review), never
// the raw URL, so movie ids do not leak into label values. Writes against the
// collection are additionally counted per operation and outcome.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "moviedb"
	metricsSubsystem = "http"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	// Status is left out to keep the histogram small.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_inflight",
			Help:      "Requests currently being served.",
		},
	)

	// Ranked lists are the largest payloads; buckets stop at 1MiB.
	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "response_size_bytes",
			Help:      "HTTP response body size in bytes.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 7),
		},
		[]string{"method", "path"},
	)

	httpReplays = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "idempotent_replays_total",
			Help:      "POST requests answered from a stored Idempotency-Key result.",
		},
		[]string{"path"},
	)

	collectionWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "collection_writes_total",
			Help:      "Add, review and delete requests by outcome (ok, rejected, failed).",
		},
		[]string{"op", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize, httpReplays, collectionWrites)
}

// Metrics returns a Gin middleware that records Prometheus metrics for each
// request. Unmatched requests (404) are labelled with the raw URL path.
//
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		route := c.FullPath()
		path := route
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := c.Writer.Status()

		httpReqs.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
		if IsReplay(c) {
			httpReplays.WithLabelValues(path).Inc()
		}
		if op := writeOp(method, route); op != "" {
			collectionWrites.WithLabelValues(op, outcome(status)).Inc()
		}
	}
}

// writeOp names the collection write served by route, or "" for reads and
// unmatched routes.
func writeOp(method, route string) string {
	switch {
	case method == http.MethodPost && strings.HasSuffix(route, "/movies"):
		return "add"
	case method == http.MethodPut && strings.HasSuffix(route, "/movies/:id/review"):
		return "review"
	case method == http.MethodDelete && strings.HasSuffix(route, "/movies/:id"):
		return "delete"
	}
	return ""
}

func outcome(status int) string {
	switch {
	case status >= 500:
		return "failed"
	case status >= 400:
		return "rejected"
	}
	return "ok"
}
