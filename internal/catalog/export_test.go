package catalog

import "github.com/prometheus/client_golang/prometheus"

// CatalogRequests exposes the request counter to external tests.
func CatalogRequests(endpoint, outcome string) prometheus.Counter {
	return catalogReqs.WithLabelValues(endpoint, outcome)
}

// MetricCollectors exposes the catalog collectors to external tests.
func MetricCollectors() (requests, latency prometheus.Collector) {
	return catalogReqs, catalogLat
}
